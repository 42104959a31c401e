// demosh is an interactive shell over a sample command tree.
//
// It wires a dispatcher with literals, typed arguments, redirects and a
// forked broadcast command into a readline loop with tab completion and
// '?' help, and can expose dispatcher counters over HTTP for scraping.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psaab/cmdgraph/pkg/argtypes"
	"github.com/psaab/cmdgraph/pkg/dispatch"
	"github.com/psaab/cmdgraph/pkg/shell"
)

// session is the caller identity commands run as.
type session struct {
	user  string
	admin bool
	vars  map[string]string
}

func main() {
	metricsAddr := flag.String("metrics-addr", "", "HTTP listen address for /metrics (empty to disable)")
	historyFile := flag.String("history", "/tmp/demosh_history", "readline history file")
	admin := flag.Bool("admin", false, "enable administrative commands")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Set up structured logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	user := os.Getenv("USER")
	if user == "" {
		user = "demo"
	}
	src := &session{user: user, admin: *admin, vars: make(map[string]string)}

	d := dispatch.New()
	metrics := dispatch.NewMetrics()
	d.SetMetrics(metrics)
	if err := register(d); err != nil {
		fmt.Fprintf(os.Stderr, "demosh: %v\n", err)
		os.Exit(1)
	}

	if *metricsAddr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(metrics)
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	sh, err := shell.New(shell.Config{
		Dispatcher:  d,
		Source:      src,
		Prompt:      user + "> ",
		HistoryFile: *historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "demosh: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("demosh — type '?' for help, 'exit' to leave")
	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "demosh: %v\n", err)
		os.Exit(1)
	}
}

// register builds the demo vocabulary.
func register(d *dispatch.Dispatcher) error {
	builders := []*dispatch.Builder{
		dispatch.Literal("exit").
			Executes(func(*dispatch.CommandContext) (int, error) {
				return 0, shell.ErrExit
			}),

		dispatch.Literal("echo").
			Then(dispatch.Argument("text", argtypes.Greedy()).
				Executes(func(c *dispatch.CommandContext) (int, error) {
					text, err := argtypes.GetString(c, "text")
					if err != nil {
						return 0, err
					}
					fmt.Println(text)
					return 1, nil
				})),

		dispatch.Literal("whoami").
			Executes(func(c *dispatch.CommandContext) (int, error) {
				fmt.Println(c.Source().(*session).user)
				return 1, nil
			}),

		dispatch.Literal("set").
			Then(dispatch.Argument("name", argtypes.Word()).
				Then(dispatch.Argument("value", argtypes.String()).
					Executes(setVar))),

		dispatch.Literal("get").
			Then(dispatch.Argument("name", argtypes.Word()).
				Suggests(suggestVars).
				Executes(getVar)),

		dispatch.Literal("repeat").
			Then(dispatch.Argument("count", argtypes.Int(1, 100)).
				Then(dispatch.Argument("text", argtypes.Greedy()).
					Executes(repeat))),

		dispatch.Literal("help").
			Executes(func(c *dispatch.CommandContext) (int, error) {
				for _, u := range d.SmartUsage(d.Root(), c.Source()) {
					fmt.Println(u.Text)
				}
				return 1, nil
			}),
	}

	for _, b := range builders {
		if _, err := d.Register(b); err != nil {
			return err
		}
	}

	// "sudo <command>" reruns any command as the admin session.
	if _, err := d.Register(dispatch.Literal("sudo").
		Requires(func(src dispatch.Source) bool {
			return src.(*session).admin
		}).
		RedirectWith(d.Root(), func(c *dispatch.CommandContext) (dispatch.Source, error) {
			s := *c.Source().(*session)
			s.user = "root"
			return &s, nil
		})); err != nil {
		return err
	}

	// "everyone <command>" fans the command out to a fixed set of user
	// sessions; the result is the number of sessions it succeeded for.
	if _, err := d.Register(dispatch.Literal("everyone").
		Fork(d.Root(), func(c *dispatch.CommandContext) ([]dispatch.Source, error) {
			base := c.Source().(*session)
			sources := make([]dispatch.Source, 0, 3)
			for _, u := range []string{"alice", "bob", base.user} {
				s := *base
				s.user = u
				sources = append(sources, &s)
			}
			return sources, nil
		})); err != nil {
		return err
	}
	return nil
}

func setVar(c *dispatch.CommandContext) (int, error) {
	name, err := argtypes.GetString(c, "name")
	if err != nil {
		return 0, err
	}
	value, err := argtypes.GetString(c, "value")
	if err != nil {
		return 0, err
	}
	c.Source().(*session).vars[name] = value
	return 1, nil
}

func getVar(c *dispatch.CommandContext) (int, error) {
	name, err := argtypes.GetString(c, "name")
	if err != nil {
		return 0, err
	}
	value, ok := c.Source().(*session).vars[name]
	if !ok {
		return 0, fmt.Errorf("no such variable: %s", name)
	}
	fmt.Println(value)
	return 1, nil
}

func repeat(c *dispatch.CommandContext) (int, error) {
	count, err := argtypes.GetInt(c, "count")
	if err != nil {
		return 0, err
	}
	text, err := argtypes.GetString(c, "text")
	if err != nil {
		return 0, err
	}
	fmt.Println(strings.Repeat(text+" ", count-1) + text)
	return count, nil
}

func suggestVars(_ context.Context, c *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	for name := range c.Source().(*session).vars {
		if strings.HasPrefix(strings.ToLower(name), sb.RemainingLower()) {
			sb.Suggest(name)
		}
	}
	return sb.Build(), nil
}
