// Package dns holds the answer-record type consumed at the embedding
// boundary: a resource record plus a wall-clock expiry check.
package dns

import (
	"fmt"
	"time"
)

// RecordType is a DNS resource record type.
type RecordType uint16

const (
	TypeA     RecordType = 1
	TypeNS    RecordType = 2
	TypeCNAME RecordType = 5
	TypeSOA   RecordType = 6
	TypePTR   RecordType = 12
	TypeMX    RecordType = 15
	TypeTXT   RecordType = 16
	TypeAAAA  RecordType = 28
	TypeSRV   RecordType = 33
)

// RecordClass is a DNS resource record class.
type RecordClass uint16

const (
	ClassIN RecordClass = 1
)

func (t RecordType) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	case TypeSRV:
		return "SRV"
	}
	return fmt.Sprintf("DNS record type %d", uint16(t))
}

func (c RecordClass) String() string {
	switch c {
	case ClassIN:
		return "IN"
	}
	return fmt.Sprintf("DNS record class %d", uint16(c))
}

// Answer is one answer record from a DNS response. It remembers the
// wall-clock time it was received so the TTL can be applied later.
type Answer struct {
	name       string
	typ        RecordType
	class      RecordClass
	ttl        uint32
	data       string
	cacheFlush bool

	receivedAt time.Time
	now        func() time.Time
}

// NewAnswer creates an answer record stamped with the current time.
// cacheFlush carries the mDNS cache-flush bit.
func NewAnswer(name string, typ RecordType, class RecordClass, ttl uint32, data string, cacheFlush bool) *Answer {
	a := &Answer{
		name:       name,
		typ:        typ,
		class:      class,
		ttl:        ttl,
		data:       data,
		cacheFlush: cacheFlush,
		now:        time.Now,
	}
	a.receivedAt = a.now()
	return a
}

func (a *Answer) Name() string       { return a.name }
func (a *Answer) Type() RecordType   { return a.typ }
func (a *Answer) Class() RecordClass { return a.class }
func (a *Answer) TTL() uint32        { return a.ttl }
func (a *Answer) Data() string       { return a.data }
func (a *Answer) CacheFlush() bool   { return a.cacheFlush }

// ReceivedAt returns the wall-clock time the record was created.
func (a *Answer) ReceivedAt() time.Time {
	return a.receivedAt
}

// HasExpired reports whether the record's TTL has elapsed. A TTL of zero
// expires immediately.
func (a *Answer) HasExpired() bool {
	deadline := a.receivedAt.Add(time.Duration(a.ttl) * time.Second)
	return !a.now().Before(deadline)
}

func (a *Answer) String() string {
	return fmt.Sprintf("%s %s %s TTL=%d %s", a.name, a.class, a.typ, a.ttl, a.data)
}
