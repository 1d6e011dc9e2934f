package dns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnswerAt(t *testing.T, received time.Time, ttl uint32) (*Answer, *time.Time) {
	t.Helper()
	now := received
	a := &Answer{
		name:  "host.local",
		typ:   TypeA,
		class: ClassIN,
		ttl:   ttl,
		data:  "192.168.1.9",
		now:   func() time.Time { return now },
	}
	a.receivedAt = a.now()
	return a, &now
}

func TestAnswerAccessors(t *testing.T) {
	a := NewAnswer("printer.local", TypeTXT, ClassIN, 120, "model=x200", true)
	assert.Equal(t, "printer.local", a.Name())
	assert.Equal(t, TypeTXT, a.Type())
	assert.Equal(t, ClassIN, a.Class())
	assert.Equal(t, uint32(120), a.TTL())
	assert.Equal(t, "model=x200", a.Data())
	assert.True(t, a.CacheFlush())
	require.False(t, a.ReceivedAt().IsZero())
}

func TestAnswerExpiry(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a, clock := newAnswerAt(t, start, 60)

	assert.False(t, a.HasExpired())

	*clock = start.Add(59 * time.Second)
	assert.False(t, a.HasExpired())

	*clock = start.Add(60 * time.Second)
	assert.True(t, a.HasExpired(), "record expires exactly at receivedAt+ttl")

	*clock = start.Add(time.Hour)
	assert.True(t, a.HasExpired())
}

func TestAnswerZeroTTLExpiresImmediately(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a, _ := newAnswerAt(t, start, 0)
	assert.True(t, a.HasExpired())
}

func TestRecordTypeString(t *testing.T) {
	tests := []struct {
		typ  RecordType
		want string
	}{
		{TypeA, "A"},
		{TypeNS, "NS"},
		{TypeCNAME, "CNAME"},
		{TypeSOA, "SOA"},
		{TypePTR, "PTR"},
		{TypeMX, "MX"},
		{TypeTXT, "TXT"},
		{TypeAAAA, "AAAA"},
		{TypeSRV, "SRV"},
		{RecordType(255), "DNS record type 255"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.typ.String())
	}
}

func TestRecordClassString(t *testing.T) {
	assert.Equal(t, "IN", ClassIN.String())
	assert.Equal(t, "DNS record class 3", RecordClass(3).String())
}

func TestAnswerString(t *testing.T) {
	a := NewAnswer("host.local", TypeAAAA, ClassIN, 30, "fe80::1", false)
	assert.Equal(t, "host.local IN AAAA TTL=30 fe80::1", a.String())
}
