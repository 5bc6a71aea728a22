package gateway

import (
	"context"
	"net/mail"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

func validateEmailTool() mcp.Tool {
	return mcp.NewTool("validate_email",
		mcp.WithDescription("Validate a single email address using the ZeroBounce API."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("The email address to validate"),
		),
		mcp.WithString("ip_address",
			mcp.Description("The IP address the email signed up from (optional)"),
		),
	)
}

func (g *Gateway) handleValidateEmail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return g.inputError("validate_email", err.Error())
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return g.inputError("validate_email", "invalid email address: "+email)
	}
	ipAddress := request.GetString("ip_address", "")

	res, err := g.client.Validate(ctx, email, ipAddress)
	if err != nil {
		return g.clientError("validate_email", err)
	}
	return g.result(res)
}

func getCreditsTool() mcp.Tool {
	return mcp.NewTool("get_credits",
		mcp.WithDescription("Get the number of credits remaining in your ZeroBounce account."),
	)
}

func (g *Gateway) handleGetCredits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := g.client.Credits(ctx)
	if err != nil {
		return g.clientError("get_credits", err)
	}

	// The provider reports the count as a string ("-1" when the key is not
	// accepted); relay it numerically when it parses.
	if credits, convErr := strconv.ParseInt(res.Credits, 10, 64); convErr == nil {
		return g.result(map[string]any{"credits": credits})
	}
	return g.result(map[string]any{"credits": res.Credits})
}

func domainSearchTool() mcp.Tool {
	return mcp.NewTool("domain_search",
		mcp.WithDescription("Search for email patterns used by a domain. Note: Use guess_format tool instead for better results."),
		mcp.WithString("domain",
			mcp.Required(),
			mcp.Description("The domain name to search for email patterns"),
		),
	)
}

func (g *Gateway) handleDomainSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return g.inputError("domain_search", err.Error())
	}

	// Pattern discovery for a bare domain is the guessformat endpoint with
	// empty name parts.
	res, err := g.client.GuessFormat(ctx, domain, "", "", "")
	if err != nil {
		return g.clientError("domain_search", err)
	}
	return g.result(res)
}

func guessFormatTool() mcp.Tool {
	return mcp.NewTool("guess_format",
		mcp.WithDescription("Identify the correct email format when you provide a name and email domain."),
		mcp.WithString("domain",
			mcp.Required(),
			mcp.Description("The email domain for which to find the email format"),
		),
		mcp.WithString("first_name",
			mcp.Required(),
			mcp.Description("The first name of the person whose email format is being searched"),
		),
		mcp.WithString("middle_name",
			mcp.Description("The middle name of the person whose email format is being searched (optional)"),
		),
		mcp.WithString("last_name",
			mcp.Description("The last name of the person whose email format is being searched (optional)"),
		),
	)
}

func (g *Gateway) handleGuessFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return g.inputError("guess_format", err.Error())
	}
	firstName, err := request.RequireString("first_name")
	if err != nil {
		return g.inputError("guess_format", err.Error())
	}
	middleName := request.GetString("middle_name", "")
	lastName := request.GetString("last_name", "")

	res, err := g.client.GuessFormat(ctx, domain, firstName, middleName, lastName)
	if err != nil {
		return g.clientError("guess_format", err)
	}
	return g.result(res)
}
