// Copyright 2024 The go-evmzero Authors
// This file is part of the go-evmzero library.
//
// The go-evmzero library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// Revision is a monotonically ordered protocol epoch tag. Higher values
// are later revisions; gas schedules and opcode availability are all
// keyed off ordering, never off the specific named constant, so a new
// epoch can be inserted by giving it the right relative position.
type Revision int

const (
	RevisionFrontier Revision = iota
	RevisionHomestead
	RevisionTangerineWhistle
	RevisionSpuriousDragon
	RevisionByzantium
	RevisionConstantinople
	RevisionIstanbul
	RevisionBerlin
	RevisionLondon
	RevisionShanghai
	RevisionCancun
)

func (r Revision) String() string {
	switch r {
	case RevisionFrontier:
		return "Frontier"
	case RevisionHomestead:
		return "Homestead"
	case RevisionTangerineWhistle:
		return "TangerineWhistle"
	case RevisionSpuriousDragon:
		return "SpuriousDragon"
	case RevisionByzantium:
		return "Byzantium"
	case RevisionConstantinople:
		return "Constantinople"
	case RevisionIstanbul:
		return "Istanbul"
	case RevisionBerlin:
		return "Berlin"
	case RevisionLondon:
		return "London"
	case RevisionShanghai:
		return "Shanghai"
	case RevisionCancun:
		return "Cancun"
	default:
		return "Unknown"
	}
}

// AtLeast reports whether r is at or after other in protocol ordering.
func (r Revision) AtLeast(other Revision) bool { return r >= other }
