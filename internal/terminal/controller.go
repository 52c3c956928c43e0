package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/platform"
	"github.com/ytget/terminal-archive/internal/search"
)

// Route names a top-level view
type Route string

const (
	RouteHome   Route = "/"
	RouteUpload Route = "/upload"
	RouteAdmin  Route = "/admin"
)

// Console shows terminal output. Implementations must be safe to call
// from any goroutine.
type Console interface {
	Print(lines ...Line)
	StartSpinner(label string)
	StopSpinner()
	Clear()
}

// Host performs actions outside the terminal view
type Host interface {
	OpenSearch()
	Navigate(route Route)
	// PromptAdmin asks for an operator name and calls submit with the raw
	// answer. Dismissing the prompt never calls submit.
	PromptAdmin(submit func(name string))
	OpenURL(u *url.URL) error
	Download(paper model.Paper, u *url.URL) error
}

// Archive is the paper source
type Archive interface {
	FetchPapers(ctx context.Context) ([]model.Paper, error)
	Resolve(ref string) (*url.URL, error)
}

// Options configure a Controller
type Options struct {
	Archive     Archive
	Prober      platform.Prober
	StoragePath string // volume reported in the device scan
	Console     Console
	Host        Host
	Modality    platform.Modality
	Sleep       func(time.Duration) // defaults to time.Sleep
	Logger      *slog.Logger
}

// Controller drives the terminal page. Its methods block (delays, network)
// and are meant to be called off the UI goroutine.
type Controller struct {
	session     *Session
	history     *History
	archive     Archive
	prober      platform.Prober
	storagePath string
	console     Console
	host        Host
	sleep       func(time.Duration)
	logger      *slog.Logger
	bootOnce    sync.Once
}

// NewController creates a controller with a fresh session
func NewController(opts Options) *Controller {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Prober == nil {
		opts.Prober = platform.NewSystemProber()
	}
	return &Controller{
		session:     NewSession(opts.Modality),
		history:     &History{},
		archive:     opts.Archive,
		prober:      opts.Prober,
		storagePath: opts.StoragePath,
		console:     opts.Console,
		host:        opts.Host,
		sleep:       opts.Sleep,
		logger:      opts.Logger,
	}
}

// Session returns the page state
func (c *Controller) Session() *Session {
	return c.session
}

// History returns the command history
func (c *Controller) History() *History {
	return c.history
}

// Boot runs the startup sequence. Steps run strictly in order; delays are
// not cancellable. Only the first call has an effect.
func (c *Controller) Boot(ctx context.Context) {
	c.bootOnce.Do(func() { c.boot(ctx) })
}

func (c *Controller) boot(ctx context.Context) {
	c.console.Print(Banner()...)
	c.sleep(WelcomeDelay)

	c.console.StartSpinner(MsgConnecting)
	c.sleep(ConnectDuration)
	c.console.StopSpinner()
	c.loadPapers(ctx)

	c.sleep(ScanDelay)
	c.console.StartSpinner(MsgScanning)
	c.sleep(ScanDuration)
	c.console.StopSpinner()
	c.console.Print(c.deviceInfo()...)

	c.console.Print(c.readyLine())
	c.logger.Info("terminal ready",
		"papers", len(c.session.Papers()),
		"modality", c.session.Modality().String())
}

// loadPapers performs the single paper list fetch of the session
func (c *Controller) loadPapers(ctx context.Context) {
	if c.archive == nil {
		c.console.Print(Error(MsgFetchFailed))
		return
	}

	papers, err := c.archive.FetchPapers(ctx)
	if err != nil {
		c.logger.Error("failed to load papers", "error", err)
		c.console.Print(Error(MsgFetchFailed))
		return
	}
	c.session.SetPapers(papers)
	c.console.Print(Success(MsgLoaded, len(papers)))
}

// deviceInfo reports CPU, memory and storage; each unknown value is N/A
func (c *Controller) deviceInfo() []Line {
	cores := MsgNotAvailable
	if n, err := c.prober.CPUCores(); err == nil {
		cores = strconv.Itoa(n)
	} else {
		c.logger.Debug("cpu probe failed", "error", err)
	}

	memory := MsgNotAvailable
	if b, err := c.prober.MemoryBytes(); err == nil {
		memory = fmt.Sprintf("~%s GB", strconv.FormatFloat(platform.ApproxMemoryGiB(b), 'f', -1, 64))
	} else {
		c.logger.Debug("memory probe failed", "error", err)
	}

	storage := MsgNotAvailable
	if c.storagePath != "" {
		if info, err := c.prober.Storage(c.storagePath); err == nil && info.Total > 0 {
			storage = fmt.Sprintf("%s free of %s",
				platform.FormatBytes(info.Free), platform.FormatBytes(info.Total))
		} else if err != nil {
			c.logger.Debug("storage probe failed", "error", err)
		}
	}

	return []Line{
		Plain("CPU cores: %s", cores),
		Plain("Device memory: %s", memory),
		Plain("Storage: %s", storage),
	}
}

func (c *Controller) readyLine() Line {
	if c.session.Modality() == platform.ModalityMobile {
		return Success(MsgReadyMobile)
	}
	return Success(MsgReadyDesktop)
}

// Search handles a query from the search overlay or the mobile search bar
func (c *Controller) Search(query string) {
	intent := search.Classify(query)
	switch intent.Kind {
	case search.IntentNone:
		return
	case search.IntentAdmin:
		c.logger.Info("admin prompt requested")
		c.host.PromptAdmin(c.EnterAdmin)
		return
	}

	results := search.Run(intent.Query, c.session.Papers())
	c.session.SetResults(results)
	c.console.Print(Info("Search results for %q:", intent.Query))
	c.printResults(results)
}

// EnterAdmin checks the operator name from the admin prompt and opens the
// admin view.
func (c *Controller) EnterAdmin(name string) {
	operator := search.Sanitize(name)
	if operator == "" {
		c.console.Print(Error(MsgAccessDenied))
		return
	}
	c.session.SetOperator(operator)
	c.logger.Info("admin access", "operator", operator)
	c.host.Navigate(RouteAdmin)
}

func (c *Controller) printResults(results []search.Result) {
	if len(results) == 0 {
		c.console.Print(Line{Kind: LinePlain, Text: "  " + MsgNoResults})
		return
	}
	lines := make([]Line, 0, len(results))
	for i, r := range results {
		lines = append(lines, Link(i+1, r.Label, r.URL))
	}
	c.console.Print(lines...)
}

// Execute runs one command typed at the prompt
func (c *Controller) Execute(input string) {
	command := strings.ToLower(strings.TrimSpace(input))
	if command == "" {
		c.console.Print(Prompt(""))
		return
	}

	c.history.Add(command)
	c.console.Print(Prompt(command))

	name, arg, _ := strings.Cut(command, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		c.console.Print(HelpLines()...)
	case "list":
		c.list()
	case "search":
		if arg == "" {
			c.host.OpenSearch()
			return
		}
		c.Search(arg)
	case "upload":
		c.host.Navigate(RouteUpload)
	case "get":
		c.withResult(name, arg, c.download)
	case "open":
		c.withResult(name, arg, c.open)
	case "clear":
		c.console.Clear()
		c.console.Print(Banner()...)
	case "exit":
		c.console.Print(Info(MsgGoodbye))
		c.sleep(ExitDelay)
		c.host.Navigate(RouteHome)
	default:
		c.console.Print(Error(MsgUnknownCommand, command), Plain(MsgHelpHint))
	}
}

func (c *Controller) list() {
	if !c.session.Loaded() {
		c.console.Print(Error(MsgFetchFailed))
		return
	}
	results := search.Results(c.session.Papers())
	c.session.SetResults(results)
	c.console.Print(Info("Available papers:"))
	c.printResults(results)
}

// withResult parses the result number of get/open and runs action on it
func (c *Controller) withResult(command, arg string, action func(search.Result, *url.URL)) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		c.console.Print(Error("Usage: %s <number>", command))
		return
	}
	result, ok := c.session.Result(n)
	if !ok {
		if c.session.ResultCount() == 0 {
			c.console.Print(Error("Nothing listed yet. Run 'list' or 'search' first."))
		} else {
			c.console.Print(Error("No paper #%d in the last listing.", n))
		}
		return
	}

	if c.archive == nil {
		c.console.Print(Error("Invalid link for paper #%d.", n))
		return
	}
	u, err := c.archive.Resolve(result.URL)
	if err != nil {
		c.logger.Warn("bad paper url", "url", result.URL, "error", err)
		c.console.Print(Error("Invalid link for paper #%d.", n))
		return
	}
	action(result, u)
}

func (c *Controller) download(r search.Result, u *url.URL) {
	if err := c.host.Download(r.Paper, u); err != nil {
		c.console.Print(Error("Download failed: %v", err))
		return
	}
	c.console.Print(Info("Downloading %s...", r.Paper.GetDisplayName()))
}

func (c *Controller) open(r search.Result, u *url.URL) {
	if err := c.host.OpenURL(u); err != nil {
		c.console.Print(Error("Could not open link: %v", err))
		return
	}
	c.console.Print(Plain("Opening %s", r.Label))
}

// DownloadFinished reports the outcome of a download started with get
func (c *Controller) DownloadFinished(task model.DownloadTask) {
	switch task.Status {
	case model.TaskStatusCompleted:
		c.console.Print(Success("Saved %s (%s)", task.OutputPath, platform.FormatBytes(uint64(max(task.FileSize, 0)))))
	case model.TaskStatusStopped:
		c.console.Print(Plain("Download of %s cancelled.", task.GetDisplayTitle()))
	case model.TaskStatusError:
		c.console.Print(Error("Download of %s failed: %s", task.GetDisplayTitle(), task.LastError))
	}
}
