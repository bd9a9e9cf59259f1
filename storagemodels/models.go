/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"strings"

	"github.com/suparena/entitymeta/errors"
)

// CapacityMode selects how table throughput is billed.
type CapacityMode int

const (
	CapacityUnset CapacityMode = iota
	Provisioned
	OnDemand
)

func (m CapacityMode) String() string {
	switch m {
	case Provisioned:
		return "PROVISIONED"
	case OnDemand:
		return "ON_DEMAND"
	default:
		return "UNSET"
	}
}

// ParseCapacityMode parses PROVISIONED, ON_DEMAND or UNSET (empty is UNSET).
func ParseCapacityMode(s string) (CapacityMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UNSET":
		return CapacityUnset, nil
	case "PROVISIONED":
		return Provisioned, nil
	case "ON_DEMAND":
		return OnDemand, nil
	}
	return CapacityUnset, fmt.Errorf("%w: %q", errors.ErrInvalidCapacityMode, s)
}

func (m CapacityMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *CapacityMode) UnmarshalText(text []byte) error {
	parsed, err := ParseCapacityMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Consistency is the read consistency used for an entity's table.
type Consistency int

const (
	Eventual Consistency = iota
	Absolute
)

func (c Consistency) String() string {
	if c == Absolute {
		return "ABSOLUTE"
	}
	return "EVENTUAL"
}

func (c Consistency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseConsistency parses a consistency token. Only the exact tokens
// EVENTUAL and ABSOLUTE are accepted.
func ParseConsistency(s string) (Consistency, error) {
	switch s {
	case "EVENTUAL":
		return Eventual, nil
	case "ABSOLUTE":
		return Absolute, nil
	}
	return Eventual, fmt.Errorf("%w: %q", errors.ErrInvalidConsistency, s)
}

// Durability is the write durability used for an entity's table.
type Durability int

const (
	CommitNoSync Durability = iota
	CommitSync
	CommitWriteNoSync
)

func (d Durability) String() string {
	switch d {
	case CommitSync:
		return "COMMIT_SYNC"
	case CommitWriteNoSync:
		return "COMMIT_WRITE_NO_SYNC"
	default:
		return "COMMIT_NO_SYNC"
	}
}

func (d Durability) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDurability maps a durability token and reports whether the token was
// recognized. Unrecognized tokens map to CommitNoSync.
func ParseDurability(s string) (Durability, bool) {
	switch strings.ToUpper(s) {
	case "COMMIT_SYNC":
		return CommitSync, true
	case "COMMIT_WRITE_NO_SYNC":
		return CommitWriteNoSync, true
	case "", "COMMIT_NO_SYNC":
		return CommitNoSync, true
	}
	return CommitNoSync, false
}

// DurabilityOf maps a durability token leniently: anything other than
// COMMIT_SYNC or COMMIT_WRITE_NO_SYNC is COMMIT_NO_SYNC. It never fails.
func DurabilityOf(s string) Durability {
	d, _ := ParseDurability(s)
	return d
}
