package contest

import "fmt"

// Actor identifies who issued a command: the display name used in contest
// records and the chat the reply goes to.
type Actor struct {
	Name   string
	ChatID int64
}

// Command is the closed set of inbound intents. The transport builds these
// after splitting arguments; numeric fields of CreateProblem stay textual so
// the service owns the format validation and its error text.
type Command interface {
	kind() CommandKind
}

type CommandKind string

const (
	CmdRegisterContestant CommandKind = "register_contestant"
	CmdRegisterAdmin      CommandKind = "register_admin"
	CmdCreateProblem      CommandKind = "create_problem"
	CmdSubmit             CommandKind = "submit"
	CmdDeleteSubmission   CommandKind = "delete_submission"
	CmdGetRanking         CommandKind = "ranking"
	CmdGetHelp            CommandKind = "help"
)

type RegisterContestant struct {
	Actor Actor
}

type RegisterAdmin struct {
	Actor    Actor
	Password string
}

type CreateProblem struct {
	Actor Actor
	Name  string
	T1    string
	T2    string
	URL   string
}

type Submit struct {
	Actor Actor
	// Proof is an opaque artifact handle (the Telegram photo file ID);
	// it is passed through to admins untouched.
	Proof string
}

type DeleteSubmission struct {
	Actor      Actor
	Contestant string
	Problem    string
}

type GetRanking struct {
	Actor Actor
}

type GetHelp struct {
	Actor Actor
}

func (RegisterContestant) kind() CommandKind { return CmdRegisterContestant }
func (RegisterAdmin) kind() CommandKind      { return CmdRegisterAdmin }
func (CreateProblem) kind() CommandKind      { return CmdCreateProblem }
func (Submit) kind() CommandKind             { return CmdSubmit }
func (DeleteSubmission) kind() CommandKind   { return CmdDeleteSubmission }
func (GetRanking) kind() CommandKind         { return CmdGetRanking }
func (GetHelp) kind() CommandKind            { return CmdGetHelp }

// Descriptor describes one command for authorization and for /help.
type Descriptor struct {
	Kind           CommandKind
	Title          string
	Usage          string
	AdminOnly      bool
	ContestantOnly bool
}

// Descriptors lists every command in the order /help presents them.
var Descriptors = []Descriptor{
	{Kind: CmdRegisterContestant, Title: "Register as contestant", Usage: "/i_am_contestant"},
	{Kind: CmdRegisterAdmin, Title: "Register as admin", Usage: "/i_am_admin <password>"},
	{Kind: CmdCreateProblem, Title: "Create problem", Usage: "/create_problem <problem name> <T1> <T2> <problem url>", AdminOnly: true},
	{Kind: CmdSubmit, Title: "Add submission", Usage: "Send to the bot a screenshot of the 'ACCEPTED' page.", ContestantOnly: true},
	{Kind: CmdDeleteSubmission, Title: "Delete submission", Usage: "/delete_submission <contestant surname> <problem name>", AdminOnly: true},
	{Kind: CmdGetRanking, Title: "See ranking", Usage: "/ranking"},
	{Kind: CmdGetHelp, Title: "Get help", Usage: "/help"},
}

func descriptorFor(kind CommandKind) Descriptor {
	for _, d := range Descriptors {
		if d.Kind == kind {
			return d
		}
	}
	return Descriptor{Kind: kind}
}

// UsageError is the rejection for a wrong argument count. The transport calls
// this before building a command, so the core never sees a malformed arity.
func UsageError(kind CommandKind) *Error {
	d := descriptorFor(kind)
	return reject(KindInvalidArgumentCount, fmt.Sprintf("Usage: %s .", d.Usage))
}
