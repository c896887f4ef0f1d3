// Command anamneonctl is a thin command line client for the local archive
// API. It covers the operations useful from scripts: account setup, entry
// and file listings, bulk export, and store maintenance. The interactive
// desktop surface remains the primary client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

const defaultServerURL = "http://localhost:8620"

// cli bundles the HTTP client with the target server and session token.
type cli struct {
	client *utils.HTTPClient
	server string
	token  string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	flags := flag.NewFlagSet("anamneonctl", flag.ExitOnError)
	server := flags.String("server", envOr("ANAMNEON_SERVER", defaultServerURL), "archive API address")
	token := flags.String("token", os.Getenv("ANAMNEON_TOKEN"), "session token from a previous login")

	command := args[0]
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	c := &cli{
		client: utils.NewHTTPClient(),
		server: *server,
		token:  *token,
	}

	rest := flags.Args()
	switch command {
	case "register":
		return c.register(rest)
	case "login":
		return c.login(rest)
	case "logout":
		return c.logout()
	case "entries":
		return c.listEntries()
	case "files":
		return c.listFiles()
	case "upload":
		return c.upload(rest)
	case "open":
		return c.open(rest)
	case "export":
		return c.export(rest)
	case "backup":
		return c.storeFile("/api/store/backup", rest)
	case "restore":
		return c.storeFile("/api/store/restore", rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: anamneonctl [-server URL] [-token TOKEN] <command> [args]

commands:
  register <email> <password> [name]   create an account and print a token
  login <email> <password>             open a session and print a token
  logout                               drop the session key on the server
  entries                              list diary entries
  files                                list file records
  upload <path> <kind>                 encrypt and register a local file
  open <record-id>                     decrypt a file to a temporary path
  export <dest-dir>                    bulk-decrypt the archive into a tree
  backup <path>                        snapshot the store file
  restore <path>                       replace the store file with a snapshot`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// request starts a resty request carrying the session token, if any.
func (c *cli) request() *resty.Request {
	req := c.client.R()
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

// check turns a non-2xx response into an error using the uniform error body.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		var body models.ErrorResponse
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil && body.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status(), body.Error)
		}
		return fmt.Errorf("%s", resp.Status())
	}
	return nil
}

func (c *cli) authCall(path string, body any) error {
	var auth models.AuthResponse
	resp, err := c.request().
		SetBody(body).
		SetResult(&auth).
		Post(c.server + path)
	if err := check(resp, err); err != nil {
		return err
	}

	fmt.Printf("logged in as %s (account %d)\n", auth.User.Email, auth.User.ID)
	fmt.Printf("export ANAMNEON_TOKEN=%s\n", auth.Token)
	return nil
}

func (c *cli) register(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: register <email> <password> [name]")
	}
	req := models.RegisterRequest{Email: args[0], Password: args[1]}
	if len(args) > 2 {
		req.Name = args[2]
	}
	return c.authCall("/api/user/register", req)
}

func (c *cli) login(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	return c.authCall("/api/user/login", models.LoginRequest{Email: args[0], Password: args[1]})
}

func (c *cli) logout() error {
	resp, err := c.request().Post(c.server + "/api/user/logout")
	if err := check(resp, err); err != nil {
		return err
	}
	fmt.Println("session closed")
	return nil
}

func (c *cli) listEntries() error {
	var entries []models.DiaryEntry
	resp, err := c.request().SetResult(&entries).Get(c.server + "/api/diary/entries")
	if err := check(resp, err); err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Printf("%s  %-10s  %s\n", entry.ID, entry.Type, entry.Title)
	}
	return nil
}

func (c *cli) listFiles() error {
	var records []models.FileRecord
	resp, err := c.request().SetResult(&records).Get(c.server + "/api/files")
	if err := check(resp, err); err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%s  %-8s  %8d  %s\n", record.ID, record.Kind, record.Metadata.Size, record.Metadata.Title)
	}
	return nil
}

func (c *cli) upload(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: upload <path> <kind>")
	}

	var record models.FileRecord
	resp, err := c.request().
		SetBody(models.UploadFileRequest{Path: args[0], Kind: models.FileKind(args[1])}).
		SetResult(&record).
		Post(c.server + "/api/files")
	if err := check(resp, err); err != nil {
		return err
	}

	fmt.Printf("uploaded %s as %s\n", record.Name, record.ID)
	return nil
}

func (c *cli) open(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: open <record-id>")
	}

	var opened models.OpenFileResponse
	resp, err := c.request().
		SetResult(&opened).
		Post(c.server + "/api/files/" + args[0] + "/open")
	if err := check(resp, err); err != nil {
		return err
	}

	fmt.Println(opened.Path)
	return nil
}

func (c *cli) export(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: export <dest-dir>")
	}

	var summary models.ExportSummary
	resp, err := c.request().
		SetBody(models.ExportRequest{DestDir: args[0]}).
		SetResult(&summary).
		Post(c.server + "/api/export")
	if err := check(resp, err); err != nil {
		return err
	}

	fmt.Printf("exported %d, skipped %d, manifest at %s\n", summary.Exported, summary.Skipped, summary.ManifestPath)
	return nil
}

func (c *cli) storeFile(path string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <path>", path)
	}

	resp, err := c.request().
		SetBody(models.StoreFileRequest{Path: args[0]}).
		Post(c.server + path)
	if err := check(resp, err); err != nil {
		return err
	}

	fmt.Println("done")
	return nil
}
