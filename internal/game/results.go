package game

// ResultCalculator settles every hand against the dealer once a round is
// over and drives the BankManager payouts. It is owned by a TurnManager and
// publishes one outcome event per settled hand.
type ResultCalculator struct {
	bank *BankManager
	bus  EventBus
}

// NewResultCalculator creates a result calculator bound to the given bank
// and event bus
func NewResultCalculator(bank *BankManager, bus EventBus) *ResultCalculator {
	return &ResultCalculator{bank: bank, bus: bus}
}

// CalculateResults compares every hand of every seat (human first, then AI
// seats, dealer excluded) against the dealer's hand and settles it.
//
// Precedence per hand:
//  1. hand busted            -> loss
//  2. dealer busted          -> win
//  3. natural blackjack and dealer not 21 -> 3:2 blackjack payout
//  4. hand value higher      -> win
//  5. hand value lower       -> loss
//  6. tie                    -> push
//
// A dealer 21 made with three or more cards blocks the 3:2 payout in rule 3
// but is not a blackjack: a player natural against it falls through to the
// value comparison and pushes.
func (rc *ResultCalculator) CalculateResults(human *Seat, ais []*Seat, dealer *Seat) {
	dealerValue := dealer.Hand(0).Value()
	dealerBusted := dealerValue > 21

	seats := append([]*Seat{human}, ais...)
	for _, seat := range seats {
		for i, hand := range seat.Hands() {
			rc.settleHand(seat, i, hand, dealerValue, dealerBusted)
		}
	}
}

func (rc *ResultCalculator) settleHand(seat *Seat, handIndex int, hand *Hand, dealerValue int, dealerBusted bool) {
	switch {
	case hand.IsBusted():
		rc.bank.HandleLoss(seat, handIndex)
		rc.bus.Publish(NewDealerWinsEvent(seat, handIndex))
	case dealerBusted:
		rc.bank.PayWin(seat, handIndex)
		rc.bus.Publish(NewPlayerWinsEvent(seat, handIndex))
	case hand.IsBlackjack() && dealerValue != 21:
		rc.bank.PayBlackjack(seat, handIndex)
		rc.bus.Publish(NewBlackjackEvent(seat, handIndex))
	case hand.Value() > dealerValue:
		rc.bank.PayWin(seat, handIndex)
		rc.bus.Publish(NewPlayerWinsEvent(seat, handIndex))
	case hand.Value() < dealerValue:
		rc.bank.HandleLoss(seat, handIndex)
		rc.bus.Publish(NewDealerWinsEvent(seat, handIndex))
	default:
		rc.bank.PayPush(seat, handIndex)
		rc.bus.Publish(NewPushEvent(seat, handIndex))
	}
}

// ProcessInsuranceOutcomes settles the insurance side bets when the dealer
// holds a natural blackjack. alreadyPaid guards against paying twice when
// the natural was resolved at deal time.
func (rc *ResultCalculator) ProcessInsuranceOutcomes(human *Seat, ais []*Seat, alreadyPaid bool) {
	if alreadyPaid {
		return
	}
	seats := append([]*Seat{human}, ais...)
	for _, seat := range seats {
		if seat.Insured {
			rc.bank.PayInsurance(seat)
		} else {
			rc.bank.HandleInsuranceLoss(seat)
		}
	}
}

// ClearInsurance forfeits every outstanding insurance stake when the dealer
// does not hold a blackjack
func (rc *ResultCalculator) ClearInsurance(human *Seat, ais []*Seat) {
	seats := append([]*Seat{human}, ais...)
	for _, seat := range seats {
		rc.bank.HandleInsuranceLoss(seat)
	}
}
