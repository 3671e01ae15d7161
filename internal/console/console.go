// Package console is an interactive terminal front end for the parking admin
// API. It hosts the spot panel and takes the place of the dashboard page.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"parkinglot/internal/entities"
	"parkinglot/internal/panel"
	"strconv"
	"strings"
)

const helpText = `Commands:
  list [lot]    list spots, optionally of one lot
  show <id>     show the details of a spot
  delete <id>   delete a spot
  clear         close the details panel
  help          show this help
  quit          leave the console
`

type API interface {
	panel.DetailsSource
	panel.SpotDeleter
	ListSpots(ctx context.Context, lotID string) ([]entities.SpotSummary, error)
}

type Console struct {
	api        API
	in         *bufio.Scanner
	out        io.Writer
	errOut     io.Writer
	fetcher    *panel.Fetcher
	dispatcher *panel.Dispatcher
	lotID      string
}

func New(api API, in io.Reader, out, errOut io.Writer) *Console {
	c := &Console{
		api:    api,
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: errOut,
	}
	c.fetcher = panel.NewFetcher(api, panel.NewTextRenderer(), panel.NewWriterRegion(out))
	c.dispatcher = panel.NewDispatcher(api, c, c, c)
	return c
}

// Run reads commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.list(ctx)
	c.fetcher.ClearDetails()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}

		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}
		switch cmd, args := fields[0], fields[1:]; cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(c.out, helpText)
		case "list":
			c.lotID = ""
			if len(args) > 0 {
				c.lotID = args[0]
			}
			c.list(ctx)
		case "show":
			if id, ok := c.parseID(args); ok {
				c.fetcher.ShowDetails(ctx, id)
			}
		case "delete":
			if id, ok := c.parseID(args); ok {
				c.dispatcher.DeleteSpot(ctx, id)
			}
		case "clear", "close":
			c.fetcher.ClearDetails()
		default:
			fmt.Fprintf(c.errOut, "unknown command %q, type help\n", cmd)
		}
	}
}

// Confirm asks on the console and accepts y or yes.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *Console) Alert(message string) {
	fmt.Fprintf(c.errOut, "!! %s\n", message)
}

// Reload redraws the spot list and closes the panel.
func (c *Console) Reload(ctx context.Context) {
	c.list(ctx)
	c.fetcher.ClearDetails()
}

func (c *Console) list(ctx context.Context) {
	spots, err := c.api.ListSpots(ctx, c.lotID)
	if err != nil {
		c.Alert(fmt.Sprintf("Could not list spots: %v", err))
		return
	}
	if len(spots) == 0 {
		fmt.Fprintln(c.out, "No spots.")
		return
	}

	lot := ""
	for _, s := range spots {
		if s.LotID != lot {
			if lot != "" {
				fmt.Fprintln(c.out)
			}
			lot = s.LotID
			fmt.Fprintf(c.out, "Lot %s:", lot)
		}
		fmt.Fprintf(c.out, " [%d:%s]", s.SpotID, s.Status)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) parseID(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(c.errOut, "expected a spot id")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		fmt.Fprintf(c.errOut, "invalid spot id %q\n", args[0])
		return 0, false
	}
	return id, true
}
