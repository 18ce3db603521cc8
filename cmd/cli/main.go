package main

import (
	"github.com/Haitham314s/blog-api/cmd/cli/posts"
	"github.com/Haitham314s/blog-api/cmd/cli/root"
	"github.com/Haitham314s/blog-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()

	users.InitUsers(rootCmd)
	posts.InitPosts(rootCmd)

	root.Execute()
}
