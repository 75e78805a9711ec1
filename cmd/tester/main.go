package main

import (
	"fmt"
	"os"

	"chat-workspace/domain"
	"chat-workspace/internal"
	"chat-workspace/repositories"
	"chat-workspace/services"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// The tester drives a full workspace scenario through the services and
// renders the resulting state, for manual smoke checks without any server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Workspace & services
	workspace := repositories.NewWorkspace()
	identity := services.NewIdentityService(workspace, log, config.AuthTokenDuration)
	channels := services.NewChannelService(workspace, log, config.MessagePageSize)

	// 3. Seed a scenario
	ada, err := identity.Register("ada@example.com", "enigma1843", "Ada", "Lovelace")
	if err != nil {
		return err
	}
	alan, err := identity.Register("alan@example.com", "bombe1940", "Alan", "Turing")
	if err != nil {
		return err
	}
	grace, err := identity.Register("grace@example.com", "cobol1959", "Grace", "Hopper")
	if err != nil {
		return err
	}

	general, err := channels.Create(ada.UserID, "general", true)
	if err != nil {
		return err
	}
	staff, err := channels.Create(ada.UserID, "staff", false)
	if err != nil {
		return err
	}
	if err = channels.Join(alan.UserID, general); err != nil {
		return err
	}
	if err = channels.Invite(ada.UserID, staff, grace.UserID); err != nil {
		return err
	}
	if err = channels.AddOwner(ada.UserID, staff, grace.UserID); err != nil {
		return err
	}
	for _, text := range []string{"hello world", "does anyone copy?", "loud and clear"} {
		if _, err = channels.Send(alan.UserID, general, text); err != nil {
			return err
		}
	}

	// 4. Render the workspace state
	color.New(color.BgBlack, color.FgGreen).Println(" chat-workspace tester ")

	users, err := identity.ListUsers(ada.UserID)
	if err != nil {
		return err
	}
	renderUsers(users)

	all, err := channels.ListAll(ada.UserID)
	if err != nil {
		return err
	}
	renderChannels(all)

	page, err := channels.Messages(alan.UserID, general, 0)
	if err != nil {
		return err
	}
	renderMessages(page)

	return nil
}

func renderUsers(users []domain.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Handle", "Name", "Email"})
	table.SetAutoFormatHeaders(true)
	table.SetBorder(false)
	for _, u := range users {
		table.Append([]string{
			fmt.Sprintf("%d", u.UserID),
			u.Handle,
			u.NameFirst + " " + u.NameLast,
			u.Email,
		})
	}
	table.Render()
}

func renderChannels(all []services.ChannelDetails) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Public", "Owners", "Members"})
	table.SetAutoFormatHeaders(true)
	table.SetBorder(false)
	for _, c := range all {
		table.Append([]string{
			fmt.Sprintf("%d", c.ID),
			c.Name,
			fmt.Sprintf("%t", c.Public),
			joinHandles(c.Owners),
			joinHandles(c.Members),
		})
	}
	table.Render()
}

func renderMessages(page services.MessagePage) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Author", "Sent", "Text"})
	table.SetAutoFormatHeaders(true)
	table.SetBorder(false)
	for _, m := range page.Messages {
		table.Append([]string{
			fmt.Sprintf("%d", m.ID),
			fmt.Sprintf("%d", m.Author),
			m.SentAt.Format("15:04:05"),
			m.Text,
		})
	}
	table.Render()
	if page.End == -1 {
		color.Gray.Println("no older messages")
	}
}

func joinHandles(profiles []domain.Profile) string {
	out := ""
	for i, p := range profiles {
		if i > 0 {
			out += ", "
		}
		out += p.Handle
	}
	return out
}
