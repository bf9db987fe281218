// Package reference holds the static venue and ticket price catalogs of the
// tournament. The services layer persists them as stadiums.csv and tickets.csv.
package reference
