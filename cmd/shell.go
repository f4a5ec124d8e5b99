package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/config"
	"github.com/sells-group/resource-finder/internal/router"
	"github.com/sells-group/resource-finder/internal/session"
)

const shellHelp = `commands:
  type <text>       search as you type (applied after a short pause)
  query <text>      search now; "query" alone clears the search
  category <tag>    filter resources by category ("all" clears)
  categories        list category tags
  more | less       reveal or hide a page of results
  open <slug>       open a library
  home              back to the home view
  back | forward    move through history
  locate            acquire your position again
  point <lat,lon>   set your position
  history           show the visited views
  help              this text
  quit              leave`

var shellMap bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse interactively with back/forward history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		out, err := newOutput(flagFormat, cmd.OutOrStdout(), shellMap)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(ctx, cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		store := router.NewMemoryStore("")
		ctrl, err := newController(cfg, cat, store, out)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		ctrl.LocateUser(ctx)
		return runShell(ctx, cat, ctrl, store, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// shell is one interactive session over a controller and its fragment store.
type shell struct {
	cat   *catalog.Catalog
	ctrl  *session.Controller
	store *router.MemoryStore
	out   io.Writer
}

// runShell reads commands from in until EOF or quit.
func runShell(ctx context.Context, cat *catalog.Catalog, ctrl *session.Controller, store *router.MemoryStore, in io.Reader, out io.Writer) error {
	sh := &shell{cat: cat, ctrl: ctrl, store: store, out: out}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if done := sh.exec(ctx, sc.Text()); done {
			return nil
		}
	}
	ctrl.FlushQuery()
	if err := sc.Err(); err != nil {
		return eris.Wrap(err, "shell: read input")
	}
	return nil
}

// exec runs one command line. It reports whether the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	if name == "type" {
		s.ctrl.QueryInput(arg)
		return false
	}
	// A pending typed query is applied before anything else happens.
	s.ctrl.FlushQuery()

	switch name {
	case "":
	case "query", "q":
		s.ctrl.SetQuery(arg)
	case "category", "c":
		if strings.EqualFold(arg, "all") {
			arg = ""
		}
		s.ctrl.SetCategory(arg)
	case "categories":
		formatCategories(s.out, countCategories(s.cat))
	case "more", "less":
		if !s.ctrl.State().Route.IsHome() {
			fmt.Fprintln(s.out, "paging applies to the home view")
			return false
		}
		if name == "more" {
			s.ctrl.ShowMore()
		} else {
			s.ctrl.ShowLess()
		}
	case "open":
		if arg == "" {
			fmt.Fprintln(s.out, "usage: open <slug>")
			return false
		}
		s.ctrl.Navigate(strings.TrimPrefix(strings.TrimPrefix(arg, "#"), router.Prefix))
	case "home":
		s.ctrl.GoHome()
	case "back":
		if !s.store.Back() {
			fmt.Fprintln(s.out, "no earlier view")
		}
	case "forward":
		if !s.store.Forward() {
			fmt.Fprintln(s.out, "no later view")
		}
	case "locate":
		s.ctrl.LocateUser(ctx)
	case "point":
		p, err := config.ParsePoint(arg)
		if err != nil {
			fmt.Fprintln(s.out, "usage: point <lat,lon>")
			return false
		}
		s.ctrl.SetUserPoint(p)
	case "history":
		s.printHistory()
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", name)
	}
	return false
}

func (s *shell) printHistory() {
	entries, pos := s.store.History()
	for i, frag := range entries {
		marker := " "
		if i == pos {
			marker = "*"
		}
		label := frag
		if label == "" {
			label = "(home)"
		}
		fmt.Fprintf(s.out, "%s %d %s\n", marker, i, label)
	}
}

func init() {
	shellCmd.Flags().BoolVar(&shellMap, "map", false, "print map markers and viewport after each view (text format)")
	rootCmd.AddCommand(shellCmd)
}
