// Package instruments holds the embedded ETF reference catalog and the
// loader that upserts it into the instruments table. The catalog ships
// inside the binary so environment resets never depend on an external
// data file.
package instruments
