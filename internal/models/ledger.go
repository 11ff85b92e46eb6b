package models

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Ledger is the ordered, append-only list of records committed during a
// session. A Ledger is a value: Append returns a new ledger and leaves the
// receiver untouched, so copies handed to different screens never alias.
// The zero value is an empty ledger.
type Ledger struct {
	records []Record
}

// NewLedger builds a ledger holding copies of records, in order.
func NewLedger(records ...Record) Ledger {
	if len(records) == 0 {
		return Ledger{}
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return Ledger{records: out}
}

// Append returns a new ledger with record placed at the end.
func (l Ledger) Append(record Record) Ledger {
	out := make([]Record, len(l.records), len(l.records)+1)
	copy(out, l.records)
	out = append(out, record.Clone())
	return Ledger{records: out}
}

// LastN returns the final n records in their original order. The whole
// ledger is returned when it holds fewer than n records.
func (l Ledger) LastN(n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	start := len(l.records) - n
	if start < 0 {
		start = 0
	}
	return cloneRecords(l.records[start:])
}

// Len reports the number of records.
func (l Ledger) Len() int {
	return len(l.records)
}

// At returns the record at position i.
func (l Ledger) At(i int) (Record, bool) {
	if i < 0 || i >= len(l.records) {
		return Record{}, false
	}
	return l.records[i].Clone(), true
}

// Records returns a copy of every record in entry order.
func (l Ledger) Records() []Record {
	return cloneRecords(l.records)
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// MarshalJSON encodes the ledger as a plain array of records.
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.records)
}

// UnmarshalJSON decodes a plain array of records.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	*l = NewLedger(records...)
	return nil
}

// EncodeMsgpack encodes the ledger as a msgpack array of records.
func (l Ledger) EncodeMsgpack(enc *msgpack.Encoder) error {
	records := l.records
	if records == nil {
		records = []Record{}
	}
	return enc.Encode(records)
}

// DecodeMsgpack decodes a msgpack array of records.
func (l *Ledger) DecodeMsgpack(dec *msgpack.Decoder) error {
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return err
	}
	*l = NewLedger(records...)
	return nil
}
