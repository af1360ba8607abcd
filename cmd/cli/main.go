// Package main provides a smoke-test client for the Jira adapter MCP
// server: it spawns the server binary as an stdio subprocess and exercises
// its tools and prompts from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	mcpclient "jira_adapter/internal/service/mcp-client"
)

var (
	serverCmd string
	argPairs  []string
	timeout   time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jira-cli",
	Short: "Exercise a Jira adapter MCP server over stdio",
	Long: `jira-cli spawns the Jira adapter MCP server as a subprocess, performs
the MCP initialize handshake, and lets you list tools, call a tool, or
render a prompt template from the terminal.

The server subprocess inherits this environment, so the usual JIRA_*
variables apply.`,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server advertises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *mcpclient.Client) error {
			tools, err := c.ListTools(ctx)
			if err != nil {
				return err
			}
			for _, tool := range tools {
				fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
			}
			return nil
		})
	},
}

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call a tool with --arg key=value pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseToolArgs(argPairs)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *mcpclient.Client) error {
			text, err := c.CallTool(ctx, args[0], toolArgs)
			if err != nil {
				return err
			}
			if text == "" {
				fmt.Println("(no content)")
				return nil
			}
			fmt.Println(text)
			return nil
		})
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt <name>",
	Short: "Render a prompt template with --arg key=value pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		promptArgs, err := parsePromptArgs(argPairs)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *mcpclient.Client) error {
			result, err := c.GetPrompt(ctx, args[0], promptArgs)
			if err != nil {
				return err
			}
			for _, message := range result.Messages {
				if text, ok := message.Content.(mcp.TextContent); ok {
					fmt.Printf("[%s] %s\n", message.Role, text.Text)
				}
			}
			return nil
		})
	},
}

// withClient dials the server subprocess, runs fn, and reaps the process.
func withClient(fn func(context.Context, *mcpclient.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := mcpclient.Dial(ctx, serverCmd)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverCmd, "server", "jira-mcp-server",
		"command used to start the MCP server subprocess")
	rootCmd.PersistentFlags().StringArrayVar(&argPairs, "arg", nil,
		"tool or prompt argument as key=value; repeatable")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute,
		"overall timeout for the command")

	rootCmd.AddCommand(toolsCmd, callCmd, promptCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
