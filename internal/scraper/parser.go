package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"

	"canpulse/internal/config"
	"canpulse/pkg/contracts/domain"
)

var tracer = otel.Tracer("canpulse/scraper")

// Fixture markup selectors
const (
	homeScoreSelector = ".Opta-Score.Opta-Home .Opta-Team-Score"
	awayScoreSelector = ".Opta-Score.Opta-Away .Opta-Team-Score"
	homeTeamSelector  = ".Opta-Home .Opta-TeamName"
	awayTeamSelector  = ".Opta-Away .Opta-TeamName"
	statusSelector    = "abbr"
)

// Fixture attributes
const (
	attrMatchID = "data-match"
	attrDate    = "data-date"
	attrStage   = "data-competition_stage"
	attrWinner  = "data-match_winner_side"
)

// Parser turns rendered calendar markup into match records
type Parser struct {
	fixtureSelector string
}

// NewParser creates a parser; an empty selector uses the default fixture class
func NewParser(fixtureSelector string) *Parser {
	if fixtureSelector == "" {
		fixtureSelector = config.DefaultFixtureSelector
	}
	return &Parser{fixtureSelector: fixtureSelector}
}

// Parse reads every fixture block. Missing pieces yield nil fields; a page
// without any fixture returns ErrExtractionEmpty.
func (p *Parser) Parse(ctx context.Context, markup string) ([]domain.MatchRecord, error) {
	_, span := tracer.Start(ctx, "Parser.Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	fixtures := doc.Find(p.fixtureSelector)
	span.SetAttributes(attribute.Int("fixtures", fixtures.Length()))
	if fixtures.Length() == 0 {
		return nil, ErrExtractionEmpty
	}

	matches := make([]domain.MatchRecord, 0, fixtures.Length())
	fixtures.Each(func(_ int, f *goquery.Selection) {
		matches = append(matches, parseFixture(f))
	})
	return matches, nil
}

func parseFixture(f *goquery.Selection) domain.MatchRecord {
	homeScore := parseScore(safeText(f.Find(homeScoreSelector)))
	awayScore := parseScore(safeText(f.Find(awayScoreSelector)))

	m := domain.MatchRecord{
		MatchID:    attr(f, attrMatchID),
		Date:       parseEpochMillis(attr(f, attrDate)),
		Status:     domain.DefaultMatchStatus,
		Stage:      domain.DefaultMatchStage,
		HomeTeam:   safeText(f.Find(homeTeamSelector)),
		AwayTeam:   safeText(f.Find(awayTeamSelector)),
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		WinnerSide: attr(f, attrWinner),
		IsDraw:     domain.ComputeDraw(homeScore, awayScore),
	}

	if status := safeText(f.Find(statusSelector)); status != nil && *status != "" {
		m.Status = *status
	}
	if stage := attr(f, attrStage); stage != nil && *stage != "" {
		m.Stage = *stage
	}
	return m
}

// safeText returns the stripped text of the first matched element, or nil
// when nothing matched. Each text node is trimmed before joining.
func safeText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	var b strings.Builder
	collectText(sel.Nodes[0], &b)
	s := b.String()
	return &s
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func attr(sel *goquery.Selection, name string) *string {
	v, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	return &v
}

// parseScore accepts only a non-empty run of ASCII digits
func parseScore(s *string) *int {
	if s == nil || *s == "" {
		return nil
	}
	for _, r := range *s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &n
}

func parseEpochMillis(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
