package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Haitham314s/blog-api/cmd/cli/config"
	"github.com/Haitham314s/blog-api/cmd/cli/output"
	"github.com/Haitham314s/blog-api/cmd/cli/users"
)

type post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage blog posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		createPostCmd(),
		deletePostCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := config.APIURL() + "/blog"
			if limit > 0 {
				url += "?limit=" + strconv.Itoa(limit)
			}

			resp, err := http.Get(url)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var items []post
			if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(items))
			for _, p := range items {
				rows = append(rows, []interface{}{p.ID, p.Title, p.AuthorName, p.CreatedAt})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of posts to list")

	return cmd
}

// ==========================
// CREATE
// ==========================
func createPostCmd() *cobra.Command {
	var title string
	var content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := users.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := map[string]string{
				"title":   title,
				"content": content,
			}
			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", config.APIURL()+"/blog", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var created post
			if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
				return err
			}

			fmt.Println("Post created:", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post content")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := users.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/blog/"+args[0], nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			fmt.Println("Post deleted")
			return nil
		},
	}
}
