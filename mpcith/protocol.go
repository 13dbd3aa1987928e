package mpcith

import (
	"fmt"
)

// States of the signing state machine. Each step of the 5-move protocol
// moves the signer from one state to the next; running a step from any
// other state is a programming error.
type protocolState uint8

const (
	stateInit protocolState = iota
	stateCommitted
	stateChallenge1Derived
	stateResponded1
	stateChallenge2Derived
	stateResponded2
	stateFinalized
)

var protocol_state_names = [...]string{
	"init",
	"committed",
	"challenge1-derived",
	"responded1",
	"challenge2-derived",
	"responded2",
	"finalized",
}

func (st protocolState) String() string {
	if int(st) < len(protocol_state_names) {
		return protocol_state_names[st]
	}
	return fmt.Sprintf("state(%d)", uint8(st))
}

// Move from state 'from' to state 'to'.
func (st *protocolState) advance(from protocolState, to protocolState) {
	if *st != from {
		panic(fmt.Sprintf("mpcith: protocol step %s -> %s run in state %s", from, to, *st))
	}
	*st = to
}
