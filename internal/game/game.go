package game

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/google/uuid"
)

// Phase identifies a state of the game machine. The set is closed; dispatch
// is an exhaustive switch so adding or removing a phase is a compile-time
// visible change.
type Phase int

const (
	PlayerSelection Phase = iota
	HandAssignment
	TrumpSelection
	Bidding
	Playing
	Scoring
	TrumpRedeciding
	GameOver
)

func (p Phase) String() string {
	switch p {
	case PlayerSelection:
		return "PlayerSelection"
	case HandAssignment:
		return "HandAssignment"
	case TrumpSelection:
		return "TrumpSelection"
	case Bidding:
		return "Bidding"
	case Playing:
		return "Playing"
	case Scoring:
		return "Scoring"
	case TrumpRedeciding:
		return "TrumpRedeciding"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Rounds is the fixed number of rounds in a game.
const Rounds = 6

// handSizes is the fixed per-round hand size schedule.
var handSizes = [Rounds]int{8, 7, 6, 6, 7, 8}

// HandSize returns the cards dealt per player in the given round (1-based).
func HandSize(round int) int {
	return handSizes[round-1]
}

// MinPlayers and MaxPlayers bound the seat count.
const (
	MinPlayers = 3
	MaxPlayers = 6
)

// Game owns all state for one Nomination game and sequences the phases.
// It is strictly turn-based: one phase handler runs at a time and blocks on
// the PlayerIO layer for each move, so no state is shared across concurrent
// callers.
type Game struct {
	ID    string
	Phase Phase
	Round int
	Trump shared.Suit

	Deck   *shared.Deck
	Trick  *shared.Trick
	Scores *Scoreboard

	players []*shared.Player // registration order
	queue   []*shared.Player // play order within the round, rotated to each trick winner
	seating []*shared.Player // dealer-rotation baseline between rounds

	names map[string]int // duplicate-name suffix bookkeeping

	io   PlayerIO
	auto PlayerIO
	rng  *rand.Rand
}

// New creates a game driven by the given prompt layer. The random source
// feeds the shuffle and the trump-decider tie-break; inject a seeded one for
// deterministic play.
func New(io PlayerIO, rng *rand.Rand) *Game {
	return &Game{
		ID:    uuid.NewString(),
		Phase: PlayerSelection,
		Round: 1,
		Trick: shared.NewTrick(),
		names: make(map[string]int),
		io:    io,
		auto:  AutoStrategy{},
		rng:   rng,
	}
}

// AddPlayer registers a seat before the game starts. Duplicate names are
// auto-suffixed ("Sam", "Sam2", "Sam3") so player identity stays unique.
func (g *Game) AddPlayer(name string, manual bool) (*shared.Player, error) {
	if g.Phase != PlayerSelection {
		return nil, fmt.Errorf("cannot register players during %s", g.Phase)
	}
	if len(g.players) >= MaxPlayers {
		return nil, fmt.Errorf("game is full: %d seats", MaxPlayers)
	}
	if seen, ok := g.names[name]; ok {
		g.names[name] = seen + 1
		name = fmt.Sprintf("%s%d", name, seen+2)
	} else {
		g.names[name] = 0
	}
	p := shared.NewPlayer(uuid.NewString(), name, manual)
	g.players = append(g.players, p)
	return p, nil
}

// Players returns the seats in registration order.
func (g *Game) Players() []*shared.Player {
	return g.players
}

// Run drives the phase machine until GameOver. It returns an error when the
// prompt layer fails (e.g. a seat disconnects); rule violations never
// surface here, they are re-prompted internally.
func (g *Game) Run() error {
	for g.Phase != GameOver {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// step executes the current phase handler and advances the phase.
func (g *Game) step() error {
	switch g.Phase {
	case PlayerSelection:
		return g.handlePlayerSelection()
	case HandAssignment:
		return g.handleHandAssignment()
	case TrumpSelection:
		return g.handleTrumpSelection()
	case Bidding:
		return g.handleBidding()
	case Playing:
		return g.handlePlaying()
	case Scoring:
		return g.handleScoring()
	case TrumpRedeciding:
		return g.handleTrumpRedeciding()
	case GameOver:
		return nil
	default:
		log.Panicf("Game %s: unknown game phase %d", g.ID, g.Phase)
		return nil
	}
}

func (g *Game) handlePlayerSelection() error {
	if len(g.players) < MinPlayers || len(g.players) > MaxPlayers {
		return fmt.Errorf("need %d-%d players, have %d", MinPlayers, MaxPlayers, len(g.players))
	}
	g.seating = append([]*shared.Player(nil), g.players...)
	g.queue = append([]*shared.Player(nil), g.seating...)
	g.Scores = NewScoreboard(g.players)
	log.Printf("Game %s: %d players registered.", g.ID, len(g.players))
	g.Phase = HandAssignment
	return nil
}

func (g *Game) handleHandAssignment() error {
	handSize := HandSize(g.Round)
	g.Deck = shared.NewDeck()
	g.Deck.Shuffle(g.rng)

	hands := g.Deck.Deal(len(g.queue), handSize)
	if hands == nil {
		log.Panicf("Game %s: deck underflow dealing round %d", g.ID, g.Round)
	}
	for i, hand := range hands {
		g.queue[i].CollectHand(hand)
	}
	log.Printf("Game %s: round %d, dealt %d cards to %d players.", g.ID, g.Round, handSize, len(g.queue))

	if g.Round == 1 {
		g.Phase = TrumpSelection
	} else {
		g.Phase = Bidding
	}
	return nil
}

// handleTrumpSelection fixes the round 1 trump. A manual first seat picks the
// suit and the physical trump card is consumed from the deck; otherwise the
// top card is peeked without consuming anyone's hand allocation.
func (g *Game) handleTrumpSelection() error {
	chooser := g.queue[0]
	if chooser.Manual {
		suit, err := g.io.RequestTrumpChoice(chooser, shared.Suits())
		if err != nil {
			return err
		}
		if card, ok := g.Deck.Draw(); ok {
			log.Printf("Game %s: trump card %s set aside.", g.ID, card.Code())
		}
		g.Trump = suit
	} else {
		card, ok := g.Deck.Peek()
		if !ok {
			log.Panicf("Game %s: empty deck during trump selection", g.ID)
		}
		g.Trump = card.Suit
		g.io.Notify(fmt.Sprintf("Card randomly chosen: %s", card.Code()))
	}
	g.io.Notify(fmt.Sprintf("Trump suit: %s", g.Trump))
	g.Phase = Bidding
	return nil
}

func (g *Game) handleBidding() error {
	handSize := HandSize(g.Round)

	// Dealer shifts every round after the first; the play queue restarts
	// from the rotated seating, discarding last round's winner rotations.
	if g.Round > 1 {
		g.seating = shared.RotateDealer(g.seating)
		g.queue = append([]*shared.Player(nil), g.seating...)
	}

	for _, p := range g.players {
		p.LastToBid = false
	}
	g.queue[len(g.queue)-1].LastToBid = true
	ResetBids(g.queue)
	g.Scores.ResetRoundScores(g.players)

	g.io.Notify(fmt.Sprintf("Round %d: %d cards per hand. Bidding begins.", g.Round, handSize))
	for _, p := range g.queue {
		if err := g.collectBid(p, handSize); err != nil {
			return err
		}
	}

	diff := BidDifference(g.queue, handSize)
	sign := "-"
	if diff > 0 {
		sign = "+"
	}
	g.io.Notify(fmt.Sprintf("%s%d round", sign, abs(diff)))

	g.Phase = Playing
	return nil
}

// collectBid blocks until the player supplies a valid bid, re-requesting on
// each rule violation.
func (g *Game) collectBid(p *shared.Player, handSize int) error {
	for {
		forbidden, ok := ForbiddenTotal(g.queue, handSize)
		amount, err := g.ioFor(p).RequestBid(p, forbidden, ok && p.LastToBid)
		if err != nil {
			return err
		}
		if err := SubmitBid(g.queue, p, amount, handSize); err != nil {
			g.io.Notify(err.Error())
			continue
		}
		g.io.Notify(fmt.Sprintf("%s bid %d", p.Name, amount))
		return nil
	}
}

func (g *Game) handlePlaying() error {
	handSize := HandSize(g.Round)
	for trick := 0; trick < handSize; trick++ {
		g.Trick.Reset()
		for _, p := range g.queue {
			if err := g.collectPlay(p); err != nil {
				return err
			}
		}

		winner, err := g.Trick.ResolveWinner(g.Trump)
		if err != nil {
			return err
		}
		g.Scores.RecordTrickWin(winner.Player)
		g.io.Notify(fmt.Sprintf("%s wins the trick with %s", winner.Player.Name, winner.Card.Code()))

		rotated, err := shared.RotateToWinner(g.queue, winner.Player)
		if err != nil {
			log.Panicf("Game %s: %v", g.ID, err)
		}
		g.queue = rotated
	}
	g.Phase = Scoring
	return nil
}

// collectPlay blocks until the player supplies a legal card, re-requesting on
// each rule violation. The trick validates suit-following; removing the card
// from the hand happens here, after the play is confirmed legal.
func (g *Game) collectPlay(p *shared.Player) error {
	for {
		card, err := g.ioFor(p).RequestPlay(p, g.LegalPlays(p))
		if err != nil {
			return err
		}
		if !p.HasCard(card) {
			g.io.Notify(fmt.Sprintf("%s is not in %s's hand", card.Code(), p.Name))
			continue
		}
		if err := g.Trick.Play(card, p, p.Hand); err != nil {
			g.io.Notify(err.Error())
			continue
		}
		p.RemoveCard(card)
		g.io.Notify(fmt.Sprintf("%s played %s", p.Name, card.Code()))
		return nil
	}
}

func (g *Game) handleScoring() error {
	g.Scores.FinalizeRound(g.players, HandSize(g.Round))
	g.io.Notify(fmt.Sprintf("Round %d scored.", g.Round))

	if g.Round == Rounds {
		g.Phase = GameOver
		log.Printf("Game %s: game over.", g.ID)
	} else {
		g.Phase = TrumpRedeciding
	}
	return nil
}

// handleTrumpRedeciding lets the round's top scorer fix next round's trump.
// Ties are broken by the injected random source. Automatic deciders keep the
// current trump.
func (g *Game) handleTrumpRedeciding() error {
	decider := g.pickTrumpDecider()
	if decider.Manual {
		suit, err := g.io.RequestTrumpChoice(decider, g.trumpCandidates())
		if err != nil {
			return err
		}
		g.Trump = suit
	}
	g.io.Notify(fmt.Sprintf("%s selected %s as trump", decider.Name, g.Trump))

	g.Round++
	g.Phase = HandAssignment
	return nil
}

// pickTrumpDecider returns a random player among those with the highest
// trick count this round.
func (g *Game) pickTrumpDecider() *shared.Player {
	top := []*shared.Player{}
	best := -1
	for _, p := range g.players {
		switch {
		case p.RoundScore > best:
			best = p.RoundScore
			top = []*shared.Player{p}
		case p.RoundScore == best:
			top = append(top, p)
		}
	}
	return top[g.rng.IntN(len(top))]
}

// trumpCandidates lists the suits with the current trump first.
func (g *Game) trumpCandidates() []shared.Suit {
	candidates := []shared.Suit{g.Trump}
	for _, s := range shared.Suits() {
		if s != g.Trump {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// ioFor routes requests to the prompt layer for human seats and to the
// first-legal-move strategy for automatic ones.
func (g *Game) ioFor(p *shared.Player) PlayerIO {
	if p.Manual {
		return g.io
	}
	return g.auto
}

// LegalPlays returns the subset of the player's hand that the suit-following
// rule allows right now.
func (g *Game) LegalPlays(p *shared.Player) []shared.Card {
	lead, ok := g.Trick.LeadingSuit()
	if !ok || !p.HasSuit(lead) {
		return append([]shared.Card(nil), p.Hand...)
	}
	var legal []shared.Card
	for _, c := range p.Hand {
		if c.Suit == lead {
			legal = append(legal, c)
		}
	}
	return legal
}

// Bids returns the running bids view in the current playing order.
func (g *Game) Bids() []PlayerBid {
	return BidsView(g.queue)
}

// Stack returns the cards on the table in play order.
func (g *Game) Stack() []shared.Card {
	return g.Trick.Cards()
}

// Queue returns the current playing order.
func (g *Game) Queue() []*shared.Player {
	return g.queue
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
