// Command fintrack is a CLI client for the fintrack API. The session lives
// in a JSON file loaded at startup and saved after register/login, never in
// process-global state.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/fintrack-app/fintrack/internal/client"
	"github.com/fintrack-app/fintrack/internal/models"
	"github.com/fintrack-app/fintrack/internal/validation"
)

const usage = `Usage: fintrack <command> [flags]

Commands:
  register        create an account and log in
  login           log in and save the session
  logout          discard the saved session
  whoami          show the logged-in user
  list            list all transactions
  add             add a transaction
  update          update a transaction
  delete          delete a transaction
  analytics       total spendings and income over a date range
  delete-account  delete the account and everything it owns
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	godotenv.Load()

	baseURL := envOr("FINTRACK_API_URL", "http://localhost:8080/api")
	sessionFile := envOr("FINTRACK_SESSION_FILE", defaultSessionFile())

	session, err := client.LoadSession(sessionFile)
	if err != nil {
		fail(err)
	}
	c := client.New(baseURL, session)

	switch os.Args[1] {
	case "register", "login":
		runAuth(c, os.Args[1], os.Args[2:], sessionFile)
	case "logout":
		if err := client.RemoveSession(sessionFile); err != nil {
			fail(err)
		}
	case "whoami":
		if session == nil {
			fmt.Println("not logged in")
			return
		}
		fmt.Printf("%s (userId %d)\n", session.User.Username, session.User.UserID)
	case "list":
		runList(c, session)
	case "add":
		runAdd(c, session, os.Args[2:])
	case "update":
		runUpdate(c, session, os.Args[2:])
	case "delete":
		runDelete(c, session, os.Args[2:])
	case "analytics":
		runAnalytics(c, session, os.Args[2:])
	case "delete-account":
		requireSession(session)
		if err := c.DeleteAccount(); err != nil {
			fail(err)
		}
		if err := client.RemoveSession(sessionFile); err != nil {
			fail(err)
		}
		fmt.Println("account deleted")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runAuth(c *client.Client, command string, args []string, sessionFile string) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	username := fs.String("username", "", "username (3-50 chars, letters, digits, _ and -)")
	password := fs.String("password", "", "password (4+ chars)")
	fs.Parse(args)

	if !validation.ValidUsername(*username) {
		fail(fmt.Errorf("invalid username format"))
	}
	if !validation.ValidPassword(*password) {
		fail(fmt.Errorf("invalid password format"))
	}

	var (
		session *client.Session
		err     error
	)
	if command == "register" {
		session, err = c.Register(*username, *password)
	} else {
		session, err = c.Login(*username, *password)
	}
	if err != nil {
		fail(err)
	}

	if err := client.SaveSession(sessionFile, session); err != nil {
		fail(err)
	}
	fmt.Printf("logged in as %s\n", session.User.Username)
}

func runList(c *client.Client, session *client.Session) {
	requireSession(session)

	fetched, err := c.Transactions()
	if err != nil {
		fail(err)
	}

	printTransactions(client.Merge(nil, fetched))
}

func runAdd(c *client.Client, session *client.Session, args []string) {
	requireSession(session)

	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date := fs.String("date", "", "date as DD-MM-YYYY")
	amount := fs.String("amount", "", "signed amount, e.g. -100.50 or +3000")
	tags := fs.String("tags", "", `tags, e.g. "#food #water"`)
	fs.Parse(args)

	if !validation.ValidTransaction(*date, *amount, *tags) {
		fail(fmt.Errorf("invalid transaction format"))
	}

	transactions, err := c.Transactions()
	if err != nil {
		fail(err)
	}

	added, err := c.AddTransaction(*date, *amount, *tags)
	if err != nil {
		fail(err)
	}

	printTransactions(client.Merge(transactions, []models.Transaction{*added}))
}

func runUpdate(c *client.Client, session *client.Session, args []string) {
	requireSession(session)

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int("id", 0, "transaction id")
	date := fs.String("date", "", "date as DD-MM-YYYY")
	amount := fs.String("amount", "", "signed amount")
	tags := fs.String("tags", "", "tags")
	fs.Parse(args)

	if !validation.ValidTransaction(*date, *amount, *tags) {
		fail(fmt.Errorf("invalid transaction format"))
	}

	transactions, err := c.Transactions()
	if err != nil {
		fail(err)
	}

	if err := c.UpdateTransaction(*id, *date, *amount, *tags); err != nil {
		fail(err)
	}

	printTransactions(client.Update(transactions, models.Transaction{
		TransactionID: *id,
		Date:          *date,
		Amount:        *amount,
		Tags:          *tags,
	}))
}

func runDelete(c *client.Client, session *client.Session, args []string) {
	requireSession(session)

	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int("id", 0, "transaction id")
	fs.Parse(args)

	transactions, err := c.Transactions()
	if err != nil {
		fail(err)
	}

	if err := c.DeleteTransaction(*id); err != nil {
		fail(err)
	}

	printTransactions(client.Remove(transactions, *id))
}

func runAnalytics(c *client.Client, session *client.Session, args []string) {
	requireSession(session)

	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	start := fs.String("start", "", "start date as DD-MM-YYYY (inclusive)")
	end := fs.String("end", "", "end date as DD-MM-YYYY (inclusive)")
	tags := fs.String("tags", "", "only count transactions carrying all of these tags")
	fs.Parse(args)

	if !validation.ValidDate(*start) || !validation.ValidDate(*end) {
		fail(fmt.Errorf("invalid date format"))
	}
	if !validation.ValidTags(*tags) {
		fail(fmt.Errorf("invalid tags format"))
	}

	result, err := c.Analytics(*start, *end, *tags)
	if err != nil {
		fail(err)
	}

	fmt.Printf("spendings: %s\nincome:    %s\n", result.Spendings, result.Income)
}

func printTransactions(transactions []models.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tTAGS")
	for _, t := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.TransactionID, t.Date, t.Amount, t.Tags)
	}
	w.Flush()
}

func requireSession(session *client.Session) {
	if session == nil {
		fail(fmt.Errorf("not logged in, run fintrack login first"))
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fintrack-session.json"
	}
	return filepath.Join(home, ".fintrack", "session.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
