package discord

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	gotils_strconv "github.com/savsgio/gotils/strconv"
)

const (
	// DiscordCreation is the millisecond unix timestamp of the Discord epoch.
	DiscordCreation = 1420070400000

	bitSize     = 64
	decimalBase = 10

	maxInt64JsonLength = 24
)

var null = []byte("null")

// Snowflake is a Discord entity identifier with an embedded creation time.
// A zero Snowflake denotes "not yet assigned".
type Snowflake int64

func (s *Snowflake) IsNil() bool {
	return *s == 0
}

func (s *Snowflake) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*s = 0

		return nil
	}

	// IDs arrive as decimal strings on the wire, but audit log and user
	// supplied payloads occasionally carry bare integers.
	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	i, err := strconv.ParseInt(gotils_strconv.B2S(b), decimalBase, bitSize)
	if err != nil {
		return fmt.Errorf("failed to unmarshal snowflake: %w", err)
	}

	*s = Snowflake(i)

	return nil
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return int64ToStringBytes(int64(s)), nil
}

func (s Snowflake) String() string {
	return strconv.FormatInt(int64(s), decimalBase)
}

// Time returns the creation time embedded in the Snowflake.
func (s Snowflake) Time() time.Time {
	msec := (int64(s) >> 22) + DiscordCreation

	return time.Unix(0, msec*int64(time.Millisecond))
}

// Int64 is a 64 bit flag carrier serialized as a decimal string, as raw
// integers above 2^53 lose precision in the wire format.
type Int64 int64

func (in *Int64) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}

	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	i, err := strconv.ParseInt(gotils_strconv.B2S(b), decimalBase, bitSize)
	if err != nil {
		return fmt.Errorf("failed to unmarshal int64: %w", err)
	}

	*in = Int64(i)

	return nil
}

func (in Int64) MarshalJSON() ([]byte, error) {
	return int64ToStringBytes(int64(in)), nil
}

func (in Int64) String() string {
	return strconv.FormatInt(int64(in), decimalBase)
}

func int64ToStringBytes(i int64) []byte {
	buf := make([]byte, 0, maxInt64JsonLength)

	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, i, decimalBase)
	buf = append(buf, '"')

	return buf
}

// Timestamp is an RFC3339 timestamp as sent by Discord. The empty string
// marshals to null.
type Timestamp string

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t == "" {
		return null, nil
	}

	buf := make([]byte, 0, len(t)+2)

	buf = append(buf, '"')
	buf = append(buf, t...)
	buf = append(buf, '"')

	return buf, nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		*t = ""

		return nil
	}

	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	*t = Timestamp(b)

	return nil
}

// Time parses the timestamp. Returns the zero time when empty or corrupted.
func (t Timestamp) Time() time.Time {
	if t == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, string(t))
	if err != nil {
		return time.Time{}
	}

	return parsed
}

// NewTimestamp formats a time as a wire timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(time.RFC3339))
}
