package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Imadiyiz/nomination-advisor/internal/game"
	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/pterm/pterm"
)

// console implements the engine's PlayerIO contract on the terminal. Local
// input errors (not a number, unknown card code) re-prompt here; rule
// violations come back from the engine, which re-requests.
type console struct {
	game *game.Game
}

func (c *console) RequestBid(p *shared.Player, forbidden int, hasForbidden bool) (int, error) {
	c.showTable(p)
	prompt := fmt.Sprintf("%s, enter your bid", p.Name)
	if hasForbidden {
		prompt = fmt.Sprintf("%s, enter your bid (banned: %d)", p.Name, forbidden)
	}
	for {
		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
		if err != nil {
			return 0, err
		}
		amount, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr != nil {
			pterm.Error.Println("Must enter a number.")
			continue
		}
		return amount, nil
	}
}

func (c *console) RequestPlay(p *shared.Player, legal []shared.Card) (shared.Card, error) {
	c.showTable(p)
	pterm.Println(pterm.LightCyan("Legal plays: ") + strings.Join(cardCodes(legal), " "))
	for {
		input, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("%s, enter a card code (e.g. 10D)", p.Name)).Show()
		if err != nil {
			return shared.Card{}, err
		}
		card, parseErr := shared.ParseCard(strings.TrimSpace(input))
		if parseErr != nil {
			pterm.Error.Println(parseErr)
			continue
		}
		return card, nil
	}
}

func (c *console) RequestTrumpChoice(p *shared.Player, candidates []shared.Suit) (shared.Suit, error) {
	pterm.Println(pterm.LightYellow(fmt.Sprintf("%s determines the trump suit", p.Name)))
	for {
		input, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText("[C] Clubs, [D] Diamonds, [H] Hearts, [S] Spades").Show()
		if err != nil {
			return 0, err
		}
		suit, parseErr := shared.ParseSuit(strings.TrimSpace(input))
		if parseErr != nil {
			pterm.Error.Println("Invalid choice. Try again.")
			continue
		}
		return suit, nil
	}
}

func (c *console) Notify(message string) {
	pterm.Info.Println(message)
}

// showTable renders the shared state plus the acting player's private hand.
// Other hands stay hidden behind placeholder marks.
func (c *console) showTable(acting *shared.Player) {
	pterm.Println()
	pterm.Println(pterm.Gray("Round ") + pterm.LightWhite(strconv.Itoa(c.game.Round)) +
		pterm.Gray("  Trump ") + pterm.LightWhite(c.game.Trump.String()))

	bids := make([]string, 0, len(c.game.Bids()))
	for _, b := range c.game.Bids() {
		if b.Placed {
			bids = append(bids, fmt.Sprintf("%s:%d", b.Name, b.Bid))
		} else {
			bids = append(bids, fmt.Sprintf("%s:X", b.Name))
		}
	}
	pterm.Println(pterm.Gray("Bids  ") + strings.Join(bids, " | "))

	if stack := c.game.Stack(); len(stack) > 0 {
		pterm.Println(pterm.Gray("Stack ") + strings.Join(cardCodes(stack), " "))
	}

	rows := make([]string, 0, len(c.game.Players()))
	for _, p := range c.game.Players() {
		if p == acting {
			rows = append(rows, fmt.Sprintf("%s: %s", p.Name, strings.Join(p.HandCodes(), " ")))
		} else {
			rows = append(rows, fmt.Sprintf("%s: %s", p.Name, strings.Repeat("X ", len(p.Hand))))
		}
	}
	pterm.Println(pterm.Gray("Hands\n") + strings.Join(rows, "\n"))

	standings := make([]string, 0)
	for _, s := range c.game.Scores.RoundStandings() {
		standings = append(standings, fmt.Sprintf("%s %d", s.Name, s.Score))
	}
	pterm.Println(pterm.Gray("Tricks ") + strings.Join(standings, " | "))
}

func cardCodes(cards []shared.Card) []string {
	codes := make([]string, len(cards))
	for i, card := range cards {
		codes[i] = card.Code()
	}
	return codes
}
