package models

// Credential is the single stored login pair. Exactly one row exists;
// it is seeded on first run and overwritten in place on change. The
// password column holds a bcrypt hash, never the plaintext.
type Credential struct {
	ID       int64  `db:"id" json:"-"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// HistoryRecord is one card-generation event. Rows are append-only and
// never updated or deleted. Number1..Number5 are the per-column drawn
// representatives of the round that produced the row.
type HistoryRecord struct {
	ID          int64  `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	RoundNumber int    `db:"round_number" json:"roundNumber"`
	Number1     int    `db:"number1" json:"number1"`
	Number2     int    `db:"number2" json:"number2"`
	Number3     int    `db:"number3" json:"number3"`
	Number4     int    `db:"number4" json:"number4"`
	Number5     int    `db:"number5" json:"number5"`
	SystemTime  string `db:"system_time" json:"systemTime"`
}

// SystemTimeLayout is the wall-clock format stored with every history
// row ("yyyy-MM-dd HH:mm:ss" in the local timezone).
const SystemTimeLayout = "2006-01-02 15:04:05"
