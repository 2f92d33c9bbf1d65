// Package game implements a single-table, multi-seat blackjack rules engine.
//
// The engine is organised around a small number of components:
//
//   - Hand and Seat model cards, bets and balances
//   - Strategy provides the fixed set of AI decision policies plus the
//     dealer's hit-below-17 policy
//   - BankManager is the only component allowed to mutate balances and bets
//   - ResultCalculator compares every hand against the dealer after a round
//     and drives the BankManager payouts
//   - TurnManager is the state machine that orchestrates dealing, turn order,
//     legality checks and round termination
//
// External callers drive the TurnManager through its command surface
// (StartRound, PlayerHit, PlayerStand, DoubleDown, SplitHand, TakeInsurance,
// DeclineInsurance) and observe it through the event bus. The engine is not
// internally concurrent: commands must be serialized by the caller and every
// transition runs to completion before the next command is accepted.
package game
