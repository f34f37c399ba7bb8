// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/internal/config"
	"github.com/fanjia1024/ticketflow/internal/log"
	"github.com/fanjia1024/ticketflow/llm"
	"github.com/fanjia1024/ticketflow/llm/prompt"
	"github.com/fanjia1024/ticketflow/llm/tool"
	"github.com/fanjia1024/ticketflow/mcpserver"
	"github.com/fanjia1024/ticketflow/restapi"
	"github.com/fanjia1024/ticketflow/ticket"
	"github.com/fanjia1024/ticketflow/triage"
	"github.com/fanjia1024/ticketflow/version"
	"github.com/fanjia1024/ticketflow/workflow"
)

const Usage = `ticketflow <Action> [Flags]
Action:
   demo         run the interactive workflow demos (sequential, concurrent, approval, tools)
   mcp          run the ticket desk as a MCP server over stdio
   sse          run the MCP bridge over HTTP/SSE, proxying the REST desk backend
   rest         run the REST desk backend
   version      print the version of ticketflow
`

const demoMenu = `Pick a demo:
   1  sequential triage (intake -> categorize -> respond)
   2  concurrent experts (billing + technical fan-out)
   3  approval gate (draft -> human review)
   4  desk tools over stdio (agent spawns a local MCP server)
   5  desk tools over SSE (agent talks to the remote bridge)
> `

func main() {
	flags := flag.NewFlagSet("ticketflow", flag.ExitOnError)

	flagHelp := flags.Bool("h", false, "Show help message.")
	flagVerbose := flags.Bool("verbose", false, "Verbose mode.")
	flagConfig := flags.String("config", ".env", "Path to the env file.")
	flagSeed := flags.String("seed", "", "Seed file for the desk store (JSON).")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}
	if *flagHelp {
		flags.Usage()
		return
	}
	if *flagVerbose {
		log.SetLogLevel(log.DebugLevel)
	}

	ctx := context.Background()

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)

	case "rest":
		cfg := mustConfig(*flagConfig)
		store := newStore(ctx, *flagSeed)
		if err := restapi.NewServer(store).ListenAndServe(cfg.RESTAddr); err != nil {
			log.Error("Failed to run desk backend: %v\n", err)
			os.Exit(1)
		}

	case "mcp":
		store := newStore(ctx, *flagSeed)
		svr := mcpserver.NewServer(mcpserver.ServerOptions{
			ServerName:    "ticketflow",
			ServerVersion: version.Version,
			Config:        store,
			Tickets:       store,
		})
		if err := svr.ServeStdio(); err != nil {
			log.Error("Failed to run MCP server: %v\n", err)
			os.Exit(1)
		}

	case "sse":
		cfg := mustConfig(*flagConfig)
		backend := mcpserver.NewRESTDesk(localURL(cfg.RESTAddr))
		if err := backend.Ping(ctx); err != nil {
			log.Error("Desk backend is not reachable, start it with `ticketflow rest`: %v\n", err)
			os.Exit(1)
		}
		svr := mcpserver.NewServer(mcpserver.ServerOptions{
			ServerName:    "ticketflow-bridge",
			ServerVersion: version.Version,
			Tickets:       backend,
		})
		if err := svr.ServeSSE(cfg.SSEAddr); err != nil {
			log.Error("Failed to run SSE bridge: %v\n", err)
			os.Exit(1)
		}

	case "demo":
		if err := runDemo(ctx, mustConfig(*flagConfig)); err != nil {
			log.Error("Demo failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown action: %s\n", action)
		flags.Usage()
		os.Exit(1)
	}
}

func mustConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Error("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newStore(ctx context.Context, seed string) *desk.Store {
	store := desk.NewStore()
	if seed == "" {
		return store
	}
	if err := store.LoadSeed(seed); err != nil {
		log.Error("Failed to load seed file: %v\n", err)
		os.Exit(1)
	}
	if err := store.Watch(ctx, seed); err != nil {
		log.Error("Failed to watch seed file: %v\n", err)
		os.Exit(1)
	}
	return store
}

// localURL turns a listen address like ":5060" into a client base URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func runDemo(ctx context.Context, cfg *config.Config) error {
	mc, err := cfg.ModelConfig()
	if err != nil {
		return err
	}
	model, err := llm.NewChatModel(ctx, mc)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	fmt.Print(demoMenu)
	choice := readLine(in)

	switch choice {
	case "1":
		return demoSequential(ctx, model, in)
	case "2":
		return demoConcurrent(ctx, model, in)
	case "3":
		return demoApproval(ctx, model, in)
	case "4":
		return demoLocalTools(ctx, model, in)
	case "5":
		return demoRemoteTools(ctx, model, in, localURL(cfg.SSEAddr)+"/sse")
	default:
		return fmt.Errorf("unknown choice %q", choice)
	}
}

func readLine(in *bufio.Scanner) string {
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func askQuestion(in *bufio.Scanner) string {
	fmt.Print("Customer question: ")
	return readLine(in)
}

func demoSequential(ctx context.Context, model llm.ChatModel, in *bufio.Scanner) error {
	seq := triage.Sequential{
		Categorizer: llm.NewChat(model, llm.ChatOptions{SysPrompt: prompt.NewTextPrompt(prompt.PromptCategorize)}),
		Responder:   llm.NewChat(model, llm.ChatOptions{SysPrompt: prompt.NewTextPrompt(prompt.PromptRespond)}),
	}
	out, err := seq.Run(ctx, askQuestion(in))
	if err != nil {
		return err
	}
	fmt.Printf("\nTicket %s [%s/%s]\n%s\n", out.Ticket.ID, out.Ticket.Category, out.Ticket.Status, out.Response)
	return nil
}

func demoConcurrent(ctx context.Context, model llm.ChatModel, in *bufio.Scanner) error {
	con := triage.Concurrent{
		Billing:   llm.NewChat(model, llm.ChatOptions{SysPrompt: prompt.NewTextPrompt(prompt.PromptBillingExpert)}),
		Technical: llm.NewChat(model, llm.ChatOptions{SysPrompt: prompt.NewTextPrompt(prompt.PromptTechnicalExpert)}),
	}
	out, err := con.Run(ctx, askQuestion(in))
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", out.Combined)
	return nil
}

func demoApproval(ctx context.Context, model llm.ChatModel, in *bufio.Scanner) error {
	// very long questions skip the human and go straight to escalation
	rule, err := workflow.CompileRule("question_len > 1000")
	if err != nil {
		return err
	}
	review := triage.Review{
		Drafter: llm.NewChat(model, llm.ChatOptions{SysPrompt: prompt.NewTextPrompt(prompt.PromptDraft)}),
		Decider: triage.DeciderFunc(func(ctx context.Context, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error) {
			return decideOnStdin(in, t, draft)
		}),
		AutoEscalate: rule,
	}
	out, err := review.Run(ctx, ticket.New(askQuestion(in)))
	if err != nil {
		return err
	}
	if out.Escalated {
		fmt.Printf("\nTicket %s escalated: %s\n", out.Ticket.ID, out.Reason)
		return nil
	}
	fmt.Printf("\nFinal response (edited=%v):\n%s\n", out.Edited, out.Response)
	return nil
}

func decideOnStdin(in *bufio.Scanner, t ticket.Ticket, draft string) (ticket.SupervisorDecision, error) {
	fmt.Printf("\nDraft for ticket %s:\n%s\n\n", t.ID, draft)
	for {
		fmt.Print("Decision (approve/edit/escalate): ")
		switch readLine(in) {
		case "approve":
			return ticket.SupervisorDecision{Kind: ticket.DecisionApprove}, nil
		case "edit":
			fmt.Print("Replacement text: ")
			return ticket.SupervisorDecision{Kind: ticket.DecisionEdit, EditedText: readLine(in)}, nil
		case "escalate":
			return ticket.SupervisorDecision{Kind: ticket.DecisionEscalate}, nil
		}
	}
}

func demoLocalTools(ctx context.Context, model llm.ChatModel, in *bufio.Scanner) error {
	self, err := os.Executable()
	if err != nil {
		return err
	}
	cli, tools, err := tool.GetLocalDeskTools(ctx, self)
	if err != nil {
		return err
	}
	defer cli.Close()
	return agentLoop(ctx, model, in, tools)
}

func demoRemoteTools(ctx context.Context, model llm.ChatModel, in *bufio.Scanner, sseURL string) error {
	cli, tools, err := tool.GetRemoteDeskTools(ctx, sseURL)
	if err != nil {
		log.Error("Bridge at %s is not reachable, start it with `ticketflow sse`\n", sseURL)
		return err
	}
	defer cli.Close()
	return agentLoop(ctx, model, in, tools)
}

func agentLoop(ctx context.Context, model llm.ChatModel, in *bufio.Scanner, tools []tool.Tool) error {
	agent, err := llm.NewReactAgent(ctx, "desk-agent", llm.ReactAgentOptions{
		SysPrompt: prompt.NewTextPrompt(prompt.PromptDeskAgent),
		Model:     model,
		Tools:     tools,
	})
	if err != nil {
		return err
	}
	fmt.Println(`Ask about tickets and settings. Empty line quits.`)
	for {
		fmt.Print("> ")
		input := readLine(in)
		if input == "" {
			return nil
		}
		out, err := agent.Call(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", out)
	}
}
