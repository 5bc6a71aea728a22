package gateway

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/weiwei-tsao/zerobounce-mcp/internal/platform/zerobounce"
)

func uploadFileTool() mcp.Tool {
	return mcp.NewTool("upload_file",
		mcp.WithDescription("Upload a file for bulk email validation."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("The path to the file to upload (.csv, .txt, .xls, or .xlsx)"),
		),
		mcp.WithNumber("email_column",
			mcp.Required(),
			mcp.Description("The column index of the email address in your file (starts from 1)"),
		),
		mcp.WithNumber("first_name_column",
			mcp.Description("The column index of the first name column (optional)"),
		),
		mcp.WithNumber("last_name_column",
			mcp.Description("The column index of the last name column (optional)"),
		),
		mcp.WithNumber("gender_column",
			mcp.Description("The column index of the gender column (optional)"),
		),
		mcp.WithNumber("ip_address_column",
			mcp.Description("The column index of the IP address column (optional)"),
		),
		mcp.WithBoolean("has_header_row",
			mcp.Description("Whether the first row is a header row (optional, default true)"),
		),
		mcp.WithString("return_url",
			mcp.Description("The URL to call back when validation is complete (optional)"),
		),
	)
}

func (g *Gateway) handleUploadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return g.inputError("upload_file", err.Error())
	}
	emailColumn, err := request.RequireInt("email_column")
	if err != nil {
		return g.inputError("upload_file", err.Error())
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return g.inputError("upload_file", fmt.Sprintf("file not readable: %v", err))
	}
	if info.IsDir() {
		return g.inputError("upload_file", "file_path is a directory: "+filePath)
	}

	res, err := g.client.SendFile(ctx, zerobounce.SendFileOptions{
		FilePath:        filePath,
		EmailColumn:     emailColumn,
		FirstNameColumn: request.GetInt("first_name_column", 0),
		LastNameColumn:  request.GetInt("last_name_column", 0),
		GenderColumn:    request.GetInt("gender_column", 0),
		IPAddressColumn: request.GetInt("ip_address_column", 0),
		HasHeaderRow:    request.GetBool("has_header_row", true),
		RemoveDuplicate: true,
		ReturnURL:       request.GetString("return_url", ""),
	})
	if err != nil {
		return g.clientError("upload_file", err)
	}
	return g.result(res)
}

func checkFileStatusTool() mcp.Tool {
	return mcp.NewTool("check_file_status",
		mcp.WithDescription("Check the status of a bulk email validation file."),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("The ID of the file to check status for"),
		),
	)
}

func (g *Gateway) handleCheckFileStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileID, err := request.RequireString("file_id")
	if err != nil {
		return g.inputError("check_file_status", err.Error())
	}

	res, err := g.client.FileStatus(ctx, fileID)
	if err != nil {
		return g.clientError("check_file_status", err)
	}
	return g.result(res)
}

func getFileTool() mcp.Tool {
	return mcp.NewTool("get_file",
		mcp.WithDescription("Get the validation results file for a bulk email validation."),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("The ID of the file to get results for"),
		),
	)
}

func (g *Gateway) handleGetFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileID, err := request.RequireString("file_id")
	if err != nil {
		return g.inputError("get_file", err.Error())
	}

	contents, err := g.client.GetFile(ctx, fileID)
	if err != nil {
		return g.clientError("get_file", err)
	}
	if !contents.Ready {
		return g.result(map[string]any{
			"success": false,
			"file_id": fileID,
			"message": contents.Message,
		})
	}

	// Results are CSV bytes; park them in a temp file and report the path
	// so the caller can read them incrementally.
	tmp, err := os.CreateTemp("", "zerobounce-*.csv")
	if err != nil {
		return g.clientError("get_file", fmt.Errorf("create results file: %w", err))
	}
	if _, err := tmp.Write(contents.Data); err != nil {
		tmp.Close()
		return g.clientError("get_file", fmt.Errorf("write results file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return g.clientError("get_file", fmt.Errorf("close results file: %w", err))
	}

	g.logger.Info("bulk results downloaded", "file_id", fileID, "path", tmp.Name(), "bytes", len(contents.Data))
	return g.result(map[string]any{
		"success":         true,
		"file_id":         fileID,
		"local_file_path": tmp.Name(),
		"file_size":       len(contents.Data),
		"message":         "File downloaded successfully to " + tmp.Name(),
	})
}

func deleteFileTool() mcp.Tool {
	return mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a bulk email validation file."),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("The ID of the file to delete"),
		),
	)
}

func (g *Gateway) handleDeleteFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileID, err := request.RequireString("file_id")
	if err != nil {
		return g.inputError("delete_file", err.Error())
	}

	res, err := g.client.DeleteFile(ctx, fileID)
	if err != nil {
		return g.clientError("delete_file", err)
	}
	return g.result(res)
}
