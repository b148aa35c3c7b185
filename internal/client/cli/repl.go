package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/learnlink/learnlink/internal/client/pages"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printfFn writes the prompt, which stays on the line the user types on.
var printfFn = fmt.Printf

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	settle()

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error

	Search(ctx context.Context, args []string) error
	Live(ctx context.Context, args []string) error
	Results(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Recs(ctx context.Context, args []string) error
	AI(ctx context.Context, args []string) error
	Platforms(ctx context.Context, args []string) error
	MaxResults(ctx context.Context, args []string) error

	Detail(ctx context.Context, args []string) error
	Explore(ctx context.Context, args []string) error
	Bookmark(ctx context.Context, args []string) error

	Profile(ctx context.Context, args []string) error
	AddEducation(ctx context.Context, args []string) error
	AddWork(ctx context.Context, args []string) error
	AddProject(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error

	Categories(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Roadmap(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Tracked(ctx context.Context, args []string) error
	Quiz(ctx context.Context, args []string) error
	Answer(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error

	PDF(ctx context.Context, args []string) error
	Ask(ctx context.Context, args []string) error

	Transcribe(ctx context.Context, args []string) error
	Stream(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = `Available commands:
  register, login, help, exit`

	helpLoggedIn = `Available commands:
  search <query>        search (AI search when ai is on)
  live                  live search as you type, empty line to stop
  results [platform]    show results, optionally of one platform
  open <n>              open result n (r<n> opens recommendation n)
  recs                  recommendations
  ai [on|off]           toggle AI mode
  platforms <a,b>       platforms to search
  max <n>               results per search
  detail                show the open result
  explore <n>           open related topic n
  bookmark              bookmark the open result
  profile               show your profile
  addedu, addwork, addproject
  share                 profile share link
  categories [category] [filter]
  generate              generate a roadmap
  roadmap               show the roadmap and progress
  done <step>[.<topic>] toggle a roadmap item
  tracked               domains with saved progress
  quiz, answer <q> <option>, submit, chat <message>
  pdf <path>            summarize a PDF
  ask <question>        ask about the PDF
  transcribe <path>     transcribe a recording and search for it
  stream <path>         stream a recording to live transcription
  whoami, logout, help, exit`
)

// runREPL starts the read–eval–print loop for the LearnLink CLI.
//
// It reads a line, parses the first token as the command and dispatches to
// methods on 'a'. Errors returned by commands are shown to the user and the
// loop goes on. Between commands the app settles navigation. The loop exits
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printfFn("ll %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "whoami":
			cmdErr = a.Whoami(ctx, args)

		case "search", "s":
			cmdErr = a.Search(ctx, args)
		case "live":
			cmdErr = a.Live(ctx, args)
		case "results":
			cmdErr = a.Results(ctx, args)
		case "open":
			cmdErr = a.Open(ctx, args)
		case "recs":
			cmdErr = a.Recs(ctx, args)
		case "ai":
			cmdErr = a.AI(ctx, args)
		case "platforms":
			cmdErr = a.Platforms(ctx, args)
		case "max":
			cmdErr = a.MaxResults(ctx, args)

		case "detail":
			cmdErr = a.Detail(ctx, args)
		case "explore":
			cmdErr = a.Explore(ctx, args)
		case "bookmark":
			cmdErr = a.Bookmark(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "addedu":
			cmdErr = a.AddEducation(ctx, args)
		case "addwork":
			cmdErr = a.AddWork(ctx, args)
		case "addproject":
			cmdErr = a.AddProject(ctx, args)
		case "share":
			cmdErr = a.Share(ctx, args)

		case "categories":
			cmdErr = a.Categories(ctx, args)
		case "generate":
			cmdErr = a.Generate(ctx, args)
		case "roadmap":
			cmdErr = a.Roadmap(ctx, args)
		case "done":
			cmdErr = a.Done(ctx, args)
		case "tracked":
			cmdErr = a.Tracked(ctx, args)
		case "quiz":
			cmdErr = a.Quiz(ctx, args)
		case "answer":
			cmdErr = a.Answer(ctx, args)
		case "submit":
			cmdErr = a.Submit(ctx, args)
		case "chat":
			cmdErr = a.Chat(ctx, args)

		case "pdf":
			cmdErr = a.PDF(ctx, args)
		case "ask":
			cmdErr = a.Ask(ctx, args)

		case "transcribe":
			cmdErr = a.Transcribe(ctx, args)
		case "stream":
			cmdErr = a.Stream(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(pages.Message(cmdErr))
		}
		a.settle()
	}
}
