package game

// BankManager is the only component allowed to mutate balances and bets.
// Every debiting operation checks sufficiency before mutating, so a failed
// operation leaves the seat untouched. All amounts are non-negative integer
// currency units.
type BankManager struct{}

// NewBankManager creates a bank manager. It is stateless; one instance is
// owned by each TurnManager.
func NewBankManager() *BankManager {
	return &BankManager{}
}

// resetBet zeroes the hand's bet after settlement, and the seat's current
// bet when settling the primary hand.
func (b *BankManager) resetBet(seat *Seat, handIndex int) {
	seat.Hand(handIndex).Bet = 0
	if handIndex == 0 {
		seat.CurrentBet = 0
	}
}

// PlaceBet debits the opening stake for a round and records it on the
// seat's primary hand. Fails without mutation if the balance is short.
func (b *BankManager) PlaceBet(seat *Seat, amount int) bool {
	if amount < 0 || seat.Balance < amount {
		return false
	}
	seat.Balance -= amount
	seat.Hand(0).Bet = amount
	seat.CurrentBet = amount
	return true
}

// PayWin returns the stake plus a 1:1 win for the hand at handIndex
func (b *BankManager) PayWin(seat *Seat, handIndex int) {
	seat.Balance += seat.Hand(handIndex).Bet * 2
	b.resetBet(seat, handIndex)
}

// PayBlackjack returns the stake plus a 3:2 win, rounded down
func (b *BankManager) PayBlackjack(seat *Seat, handIndex int) {
	seat.Balance += seat.Hand(handIndex).Bet * 5 / 2
	b.resetBet(seat, handIndex)
}

// PayPush returns the stake only
func (b *BankManager) PayPush(seat *Seat, handIndex int) {
	seat.Balance += seat.Hand(handIndex).Bet
	b.resetBet(seat, handIndex)
}

// HandleLoss forfeits the stake
func (b *BankManager) HandleLoss(seat *Seat, handIndex int) {
	b.resetBet(seat, handIndex)
}

// PlaceInsurance debits an insurance stake of half the seat's current bet,
// rounded down. Fails without mutation if the balance is short.
func (b *BankManager) PlaceInsurance(seat *Seat) bool {
	stake := seat.CurrentBet / 2
	if seat.Balance < stake {
		return false
	}
	seat.Balance -= stake
	seat.Insured = true
	seat.InsuranceBet = stake
	seat.Hand(0).Insured = true
	return true
}

// PayInsurance pays 2:1 on the insurance stake (stake returned plus twice
// the stake) and clears the insurance state. No-op without insurance.
func (b *BankManager) PayInsurance(seat *Seat) {
	if !seat.Insured {
		return
	}
	seat.Balance += seat.InsuranceBet * 3
	b.clearInsurance(seat)
}

// HandleInsuranceLoss forfeits a held insurance stake
func (b *BankManager) HandleInsuranceLoss(seat *Seat) {
	if !seat.Insured {
		return
	}
	b.clearInsurance(seat)
}

func (b *BankManager) clearInsurance(seat *Seat) {
	seat.Insured = false
	seat.InsuranceBet = 0
	seat.Hand(0).Insured = false
}

// HandleDoubleDown debits a second stake equal to the hand's bet and
// doubles the bet. Fails without mutation if the balance is short.
func (b *BankManager) HandleDoubleDown(seat *Seat, handIndex int) bool {
	hand := seat.Hand(handIndex)
	if seat.Balance < hand.Bet {
		return false
	}
	seat.Balance -= hand.Bet
	hand.Bet *= 2
	hand.Doubled = true
	if handIndex == 0 {
		seat.CurrentBet = hand.Bet
	}
	return true
}

// HandleSplit debits a matching stake for the new hand created by a split
// and adds it to the seat's current bet. The card movement itself happens
// on the seat. Fails without mutation if the split is not legal.
func (b *BankManager) HandleSplit(seat *Seat, handIndex int) bool {
	hand := seat.Hand(handIndex)
	if !seat.CanSplit(handIndex) || seat.Balance < hand.Bet {
		return false
	}
	seat.Balance -= hand.Bet
	seat.CurrentBet += hand.Bet
	return true
}
