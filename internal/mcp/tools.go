package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/devdeck/internal/game"
)

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, sess *GameSession) {
	h := &handlers{sess: sess}
	s.AddTool(getStateTool(), h.getState)
	s.AddTool(listCardsTool(), h.listCards)
	s.AddTool(playCardTool(), h.playCard)
	s.AddTool(drawCardTool(), h.command(game.CmdDraw))
	s.AddTool(discardCardTool(), h.cardCommand(game.CmdDiscard))
	s.AddTool(recycleCardTool(), h.command(game.CmdRecycle))
	s.AddTool(pickOptionTool(), h.cardCommand(game.CmdPick))
	s.AddTool(skipOptionTool(), h.command(game.CmdSkip))
	s.AddTool(selectCardsTool(), h.selectCards)
	s.AddTool(adjustResourceTool(), h.adjustResource)
	s.AddTool(resetTool(), h.reset)
	s.AddTool(enableInfinityTool(), h.command(game.CmdInfinity))
	s.AddTool(dismissErrorTool(), h.command(game.CmdContinue))
}

// --- Tool definitions ---

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current session: resources, piles, upgrades, modifiers, the card offer, "+
			"events since the last call and any pending selection. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its cost and effect at common rarity."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the hand. Some cards ask for a selection first; the response then "+
			"carries 'pending' and the play finishes after select_cards."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card name; close spellings are accepted")),
		mcp.WithBoolean("free", mcp.Description("Skip paying the cost")),
	)
}

func drawCardTool() mcp.Tool {
	return mcp.NewTool("draw_card",
		mcp.WithDescription("Pay the draw cost in energy and draw the top card of the draw pile."),
	)
}

func discardCardTool() mcp.Tool {
	return mcp.NewTool("discard_card",
		mcp.WithDescription("Move a hand card to the discard pile."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card name in hand")),
	)
}

func recycleCardTool() mcp.Tool {
	return mcp.NewTool("recycle_card",
		mcp.WithDescription("Pay the draw cost to put the top discard under the draw pile."),
	)
}

func pickOptionTool() mcp.Tool {
	return mcp.NewTool("pick_option",
		mcp.WithDescription("Take a card from the current offer into the hand."),
		mcp.WithString("card", mcp.Required(), mcp.Description("One of the offered card names")),
	)
}

func skipOptionTool() mcp.Tool {
	return mcp.NewTool("skip_option",
		mcp.WithDescription("Decline the current offer."),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Answer the pending selection of a card being played. Use this when the response "+
			"carries 'pending'."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Comma-separated candidate names (e.g. 'Knex, Jest'), or empty string to cancel the play")),
	)
}

func adjustResourceTool() mcp.Tool {
	return mcp.NewTool("adjust_resource",
		mcp.WithDescription("Add to or remove from a resource directly."),
		mcp.WithString("resource", mcp.Required(), mcp.Enum("energy", "money", "reputation")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Signed amount to add")),
	)
}

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Abandon the session and deal a new one. Cross-session stats are kept."),
		mcp.WithString("difficulty", mcp.Enum("easy", "normal", "hard", "expert"), mcp.Description("Defaults to the current difficulty")),
	)
}

func enableInfinityTool() mcp.Tool {
	return mcp.NewTool("enable_infinity_mode",
		mcp.WithDescription("Keep playing past the money target. Reopens a won session."),
	)
}

func dismissErrorTool() mcp.Tool {
	return mcp.NewTool("dismiss_error",
		mcp.WithDescription("Clear the last recorded fault so play can continue."),
	)
}

// --- Tool handlers ---

type handlers struct {
	sess *GameSession
}

func (h *handlers) reply(resp *ToolResponse) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *handlers) getState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.reply(h.sess.State())
}

func (h *handlers) listCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.reply(&ToolResponse{Cards: h.sess.engine.Catalog()})
}

func (h *handlers) command(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h.reply(h.sess.Run(game.Command{Name: name}))
	}
}

func (h *handlers) cardCommand(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		card, err := game.ResolveCardName(request.GetString("card", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return h.reply(h.sess.Run(game.Command{Name: name, Card: card}))
	}
}

func (h *handlers) playCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card, err := game.ResolveCardName(request.GetString("card", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	free := request.GetBool("free", false)
	return h.reply(h.sess.Run(game.Command{Name: game.CmdPlay, Card: card, Free: free}))
}

func (h *handlers) selectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := strings.TrimSpace(request.GetString("cards", ""))
	if raw == "" {
		return h.reply(h.sess.Select(nil))
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name, err := game.ResolveCardName(part)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid card '%s': %v", strings.TrimSpace(part), err), nil
		}
		names = append(names, name)
	}
	return h.reply(h.sess.Select(names))
}

func (h *handlers) adjustResource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount := request.GetInt("amount", 0)
	var name string
	switch request.GetString("resource", "") {
	case "energy":
		name = game.CmdAddEnergy
	case "money":
		name = game.CmdAddMoney
	case "reputation":
		name = game.CmdAddReputation
	default:
		return mcp.NewToolResultError("resource must be energy, money or reputation"), nil
	}
	return h.reply(h.sess.Run(game.Command{Name: name, Amount: amount}))
}

func (h *handlers) reset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	difficulty := request.GetString("difficulty", "")
	if difficulty != "" {
		if _, err := game.ParseDifficulty(difficulty); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return h.reply(h.sess.Run(game.Command{Name: game.CmdReset, Difficulty: difficulty}))
}
