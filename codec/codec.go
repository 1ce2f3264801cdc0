// Package codec encodes the condition buffer exchanged with the event
// flow rule processors. The wire format is protobuf (proto3):
//
//	message ConditionBuffer {
//	  oneof subject { Account account = 1; Entity entity = 2; }
//	  repeated ConditionEntry conditions = 3;
//	}
//	message Account { string id = 1; string tenant_id = 2; }
//	message Entity  { string id = 1; string tenant_id = 2; string cre_dt_tm = 3; }
//	message ConditionEntry {
//	  string cond_id = 1; string cond_tp = 2; string incptn_dt_tm = 3;
//	  optional string xprtn_dt_tm = 4; string cond_rsn = 5; string usr = 6;
//	  string cre_dt_tm = 7; repeated Perspective prsptvs = 8;
//	}
//	message Perspective {
//	  string prsptv = 1; repeated string evt_tp = 2;
//	  string incptn_dt_tm = 3; optional string xprtn_dt_tm = 4;
//	}
package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrBothSubjects is returned when a buffer names both an account and an entity.
var ErrBothSubjects = errors.New("codec: buffer has both account and entity subjects")

// ConditionBuffer carries the conditions governing one subject.
type ConditionBuffer struct {
	Account    *Account
	Entity     *Entity
	Conditions []*ConditionEntry
}

// Account is the account subject of a buffer.
type Account struct {
	ID       string
	TenantID string
}

// Entity is the entity subject of a buffer.
type Entity struct {
	ID        string
	TenantID  string
	CreatedAt string
}

// ConditionEntry is one condition with the perspectives it applies from.
type ConditionEntry struct {
	ConditionID   string
	Type          string
	InceptionTime string
	ExpiryTime    *string
	Reason        string
	User          string
	CreatedAt     string
	Perspectives  []*Perspective
}

// Perspective scopes a condition to one side of a payment and a set of
// event types.
type Perspective struct {
	Perspective   string
	EventTypes    []string
	InceptionTime string
	ExpiryTime    *string
}

// ──────────────────────────────────────────────────
// Encoding
// ──────────────────────────────────────────────────

// Encode serializes buf.
func Encode(buf *ConditionBuffer) ([]byte, error) {
	if buf == nil {
		return nil, errors.New("codec: nil buffer")
	}
	if buf.Account != nil && buf.Entity != nil {
		return nil, ErrBothSubjects
	}
	var b []byte
	if a := buf.Account; a != nil {
		var sub []byte
		sub = appendString(sub, 1, a.ID)
		sub = appendString(sub, 2, a.TenantID)
		b = appendMessage(b, 1, sub)
	}
	if e := buf.Entity; e != nil {
		var sub []byte
		sub = appendString(sub, 1, e.ID)
		sub = appendString(sub, 2, e.TenantID)
		sub = appendString(sub, 3, e.CreatedAt)
		b = appendMessage(b, 2, sub)
	}
	for _, c := range buf.Conditions {
		if c == nil {
			return nil, errors.New("codec: nil condition entry")
		}
		sub, err := encodeCondition(c)
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 3, sub)
	}
	return b, nil
}

func encodeCondition(c *ConditionEntry) ([]byte, error) {
	var b []byte
	b = appendString(b, 1, c.ConditionID)
	b = appendString(b, 2, c.Type)
	b = appendString(b, 3, c.InceptionTime)
	b = appendOptional(b, 4, c.ExpiryTime)
	b = appendString(b, 5, c.Reason)
	b = appendString(b, 6, c.User)
	b = appendString(b, 7, c.CreatedAt)
	for _, p := range c.Perspectives {
		if p == nil {
			return nil, fmt.Errorf("codec: condition %s: nil perspective", c.ConditionID)
		}
		var sub []byte
		sub = appendString(sub, 1, p.Perspective)
		for _, evt := range p.EventTypes {
			sub = protowire.AppendTag(sub, 2, protowire.BytesType)
			sub = protowire.AppendString(sub, evt)
		}
		sub = appendString(sub, 3, p.InceptionTime)
		sub = appendOptional(sub, 4, p.ExpiryTime)
		b = appendMessage(b, 8, sub)
	}
	return b, nil
}

// appendString writes a proto3 scalar string; the empty default is omitted.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendOptional writes an explicit-presence string, empty or not.
func appendOptional(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// ──────────────────────────────────────────────────
// Decoding
// ──────────────────────────────────────────────────

// Decode parses a buffer produced by Encode or any conforming protobuf
// implementation. Unknown fields are skipped. When both subject fields
// are present the last one wins, following oneof semantics.
func Decode(data []byte) (*ConditionBuffer, error) {
	buf := new(ConditionBuffer)
	err := walk(data, func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			a := new(Account)
			if err := walk(v, func(num protowire.Number, v []byte) error {
				switch num {
				case 1:
					a.ID = string(v)
				case 2:
					a.TenantID = string(v)
				}
				return nil
			}); err != nil {
				return fmt.Errorf("account: %w", err)
			}
			buf.Account, buf.Entity = a, nil
		case 2:
			e := new(Entity)
			if err := walk(v, func(num protowire.Number, v []byte) error {
				switch num {
				case 1:
					e.ID = string(v)
				case 2:
					e.TenantID = string(v)
				case 3:
					e.CreatedAt = string(v)
				}
				return nil
			}); err != nil {
				return fmt.Errorf("entity: %w", err)
			}
			buf.Entity, buf.Account = e, nil
		case 3:
			c, err := decodeCondition(v)
			if err != nil {
				return err
			}
			buf.Conditions = append(buf.Conditions, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("codec: decode: %w", err)
	}
	return buf, nil
}

func decodeCondition(data []byte) (*ConditionEntry, error) {
	c := new(ConditionEntry)
	err := walk(data, func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			c.ConditionID = string(v)
		case 2:
			c.Type = string(v)
		case 3:
			c.InceptionTime = string(v)
		case 4:
			s := string(v)
			c.ExpiryTime = &s
		case 5:
			c.Reason = string(v)
		case 6:
			c.User = string(v)
		case 7:
			c.CreatedAt = string(v)
		case 8:
			p, err := decodePerspective(v)
			if err != nil {
				return err
			}
			c.Perspectives = append(c.Perspectives, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("condition: %w", err)
	}
	return c, nil
}

func decodePerspective(data []byte) (*Perspective, error) {
	p := new(Perspective)
	err := walk(data, func(num protowire.Number, v []byte) error {
		switch num {
		case 1:
			p.Perspective = string(v)
		case 2:
			p.EventTypes = append(p.EventTypes, string(v))
		case 3:
			p.InceptionTime = string(v)
		case 4:
			s := string(v)
			p.ExpiryTime = &s
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("perspective: %w", err)
	}
	return p, nil
}

// walk visits every length-delimited field of a message. Fields of any
// other wire type are skipped, as are length-delimited fields the visitor
// does not recognize.
func walk(data []byte, visit func(num protowire.Number, v []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if err := visit(num, v); err != nil {
			return err
		}
	}
	return nil
}
