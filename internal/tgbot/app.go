package tgbot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dario2994/code-contest-bot/internal/config"
	"github.com/dario2994/code-contest-bot/internal/contest"
	"github.com/dario2994/code-contest-bot/internal/sheets"
)

// App is the chat transport: it turns Telegram updates into typed contest
// commands, hands them to the service one at a time, and delivers the
// resulting notifications in order, best-effort.
type App struct {
	cfg    config.Config
	bot    *tgbotapi.BotAPI
	svc    *contest.Service
	mirror *sheets.Mirror // nil when the sheet mirror is not configured
}

func New(cfg config.Config, svc *contest.Service, mirror *sheets.Mirror) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &App{
		cfg:    cfg,
		bot:    b,
		svc:    svc,
		mirror: mirror,
	}, nil
}

// Run consumes updates until the context is cancelled. Updates are handled
// sequentially, so contest commands never interleave. A persistence failure
// from the service stops the loop.
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message == nil {
				continue
			}
			if err := a.handleMessage(upd.Message); err != nil {
				return err
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

// ---------- Message handling ----------

// handleMessage parses one update into a command and dispatches it. The
// returned error is fatal (persistence failure); everything else is answered
// or logged here.
func (a *App) handleMessage(m *tgbotapi.Message) error {
	actor := actorFrom(m)

	// A photo is proof of completion for the current problem. The largest
	// size's file ID travels through the core as an opaque handle.
	if len(m.Photo) > 0 {
		proof := m.Photo[len(m.Photo)-1].FileID
		return a.dispatch(contest.Submit{Actor: actor, Proof: proof})
	}

	txt := strings.TrimSpace(m.Text)
	if !strings.HasPrefix(txt, "/") {
		return nil
	}

	fields := strings.Fields(txt)
	cmd, args := fields[0], fields[1:]
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/start", "/help":
		return a.dispatch(contest.GetHelp{Actor: actor})

	case "/i_am_contestant":
		return a.dispatch(contest.RegisterContestant{Actor: actor})

	case "/i_am_admin":
		if len(args) != 1 {
			return a.replyUsage(actor, contest.CmdRegisterAdmin)
		}
		return a.dispatch(contest.RegisterAdmin{Actor: actor, Password: args[0]})

	case "/create_problem":
		if len(args) != 4 {
			return a.replyUsage(actor, contest.CmdCreateProblem)
		}
		return a.dispatch(contest.CreateProblem{
			Actor: actor,
			Name:  args[0],
			T1:    args[1],
			T2:    args[2],
			URL:   args[3],
		})

	case "/delete_submission":
		if len(args) != 2 {
			return a.replyUsage(actor, contest.CmdDeleteSubmission)
		}
		return a.dispatch(contest.DeleteSubmission{
			Actor:      actor,
			Contestant: args[0],
			Problem:    args[1],
		})

	case "/ranking":
		return a.dispatch(contest.GetRanking{Actor: actor})
	}

	// Unknown commands are ignored, like any other chatter.
	return nil
}

// replyUsage answers a wrong argument count with the core's usage text,
// without invoking the service.
func (a *App) replyUsage(actor contest.Actor, kind contest.CommandKind) error {
	if err := a.SendText(actor.ChatID, contest.UsageError(kind).Message); err != nil {
		log.Printf("send usage: %v", err)
	}
	return nil
}

func (a *App) dispatch(cmd contest.Command) error {
	out, err := a.svc.Handle(cmd)
	if err != nil {
		return err
	}

	a.deliver(out.Notifications)

	if out.Mutated && a.mirror != nil {
		go a.publishRanking()
	}
	return nil
}

// deliver sends notifications in order. A failed send is logged and must not
// block the remaining ones.
func (a *App) deliver(notifications []contest.Notification) {
	for _, n := range notifications {
		if err := a.send(n); err != nil {
			log.Printf("deliver to %d: %v", n.ChatID, err)
		}
	}
}

func (a *App) send(n contest.Notification) error {
	if n.Photo != "" {
		photo := tgbotapi.NewPhoto(n.ChatID, tgbotapi.FileID(n.Photo))
		photo.Caption = n.Text
		_, err := a.bot.Send(photo)
		return err
	}

	text := n.Text
	if n.Monospace {
		text = "```txt\n" + text + " ```"
	}
	msg := tgbotapi.NewMessage(n.ChatID, text)
	if n.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) publishRanking() {
	header, rows := a.svc.RankingSnapshot()
	if err := a.mirror.Publish(header, rows); err != nil {
		log.Printf("ranking mirror: %v", err)
	}
}

// actorFrom derives the contest identity from the sender: contestants are
// known by surname, matching how admins refer to them in /delete_submission.
func actorFrom(m *tgbotapi.Message) contest.Actor {
	name := m.From.LastName
	if name == "" {
		name = m.From.FirstName
	}
	if name == "" {
		name = m.From.UserName
	}
	return contest.Actor{Name: name, ChatID: m.Chat.ID}
}
