package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Imadiyiz/nomination-advisor/internal/game"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func main() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("N", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("omination", pterm.FgDarkGray.ToStyle()),
	).Render()

	io := &console{}
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	g := game.New(io, rng)
	io.game = g

	count := promptPlayerCount()
	for i := 0; i < count; i++ {
		pterm.Println(pterm.Gray(fmt.Sprintf("Configuring player %d", i+1)))
		name := promptPlayerName()
		manual := promptYesNo("Is this player human-controlled? (Y/n)")
		p, err := g.AddPlayer(name, manual)
		if err != nil {
			pterm.Error.Println(err)
			i--
			continue
		}
		pterm.Success.Printfln("%s created", p.Name)
	}

	if err := g.Run(); err != nil {
		pterm.Error.Printfln("Game aborted: %v", err)
		os.Exit(1)
	}

	pterm.Println()
	pterm.Println(pterm.LightGreen("FINAL STANDINGS"))
	rows := pterm.TableData{{"Player", "Score"}}
	for _, s := range g.Scores.TotalStandings() {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Score)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func promptPlayerCount() int {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("Enter number of players (%d-%d)", game.MinPlayers, game.MaxPlayers)).Show()
		count, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			pterm.Error.Println("Must be a number.")
			continue
		}
		if count < game.MinPlayers || count > game.MaxPlayers {
			pterm.Error.Printfln("Players must be between %d and %d.", game.MinPlayers, game.MaxPlayers)
			continue
		}
		return count
	}
}

func promptPlayerName() string {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter player name").Show()
		name := strings.TrimSpace(input)
		if !isAlpha(name) {
			pterm.Error.Println("Must be a valid name without numbers or special characters.")
			continue
		}
		if len(name) < 2 || len(name) > 20 {
			pterm.Error.Println("Player name must be 2-20 characters long.")
			continue
		}
		return name
	}
}

func promptYesNo(prompt string) bool {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "":
			return true
		case "n":
			return false
		default:
			pterm.Error.Println("Enter 'y' or 'n'.")
		}
	}
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
