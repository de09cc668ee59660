package cli

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/dialogue"
	"github.com/easeaico/shadow/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask Shadow a question",
		Long:  "Ask a single question, or start a conversation on stdin when no question is given.",
		Run:   runChat,
	}
	cmd.Flags().String("image", "", "Image file or data URL to attach")
	cmd.Flags().String("history", "", "JSON file with prior turns ([{\"role\":\"user\",\"text\":\"...\"}])")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	imagePath, _ := cmd.Flags().GetString("image")
	historyPath, _ := cmd.Flags().GetString("history")

	image, err := loadImage(imagePath)
	if err != nil {
		exitErr("chat", err)
	}
	history, err := loadHistory(historyPath)
	if err != nil {
		exitErr("chat", err)
	}

	a := openApp(cmd)
	defer a.Close()
	user := userID()

	if len(args) > 0 {
		fmt.Println(a.Dialogue.Respond(cmd.Context(), dialogue.Request{
			UserID:   user,
			Question: strings.Join(args, " "),
			Image:    image,
			History:  history,
		}))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			fmt.Print("> ")
			continue
		}
		answer := a.Dialogue.Respond(cmd.Context(), dialogue.Request{
			UserID:   user,
			Question: question,
			Image:    image,
			History:  history,
		})
		// The image only goes with the first question.
		image = ""
		fmt.Printf("%s\n> ", answer)
		history = append(history, types.ChatTurn{Role: "user", Text: question}, types.ChatTurn{Role: "model", Text: answer})
		if cmd.Context().Err() != nil {
			return
		}
	}
}

func loadImage(path string) (string, error) {
	if path == "" || strings.HasPrefix(path, "data:") {
		return path, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

func loadHistory(path string) ([]types.ChatTurn, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	var turns []types.ChatTurn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return turns, nil
}
