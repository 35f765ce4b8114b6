// feedwatch is a terminal client for the meme feed. It walks the paginated
// listing the same way the web frontend's infinite scroll does: one page per
// request, never more than one request in flight, stopping at the last page.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cricbytes/cricbytes/internal/feed"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "backend base URL")
	pageSize := flag.Int("page-size", 10, "memes per page")
	flag.Parse()

	client := NewAPIClient(*baseURL, os.Getenv("AUTH_TOKEN"))
	f := feed.New(client, *pageSize)
	ctx := context.Background()

	if err := f.LoadMore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load feed: %v\n", err)
	}
	render(f)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: [enter] more, r retry, l <n> like item n, q quit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "q":
			return

		case line == "":
			if err := f.LoadMore(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
			}
			render(f)

		case line == "r":
			if err := f.Retry(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "retry failed: %v\n", err)
			}
			render(f)

		case strings.HasPrefix(line, "l "):
			n, err := strconv.Atoi(strings.TrimSpace(line[2:]))
			if err != nil || n < 1 || n > len(f.Items()) {
				fmt.Println("no such item")
				continue
			}
			item := f.Items()[n-1]
			likes, err := client.Like(ctx, item.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "like failed: %v\n", err)
				continue
			}
			fmt.Printf("liked %q, now at %d\n", caption(item), likes)

		default:
			fmt.Println("commands: [enter] more, r retry, l <n> like item n, q quit")
		}
	}
}

func render(f *feed.Feed) {
	for i, item := range f.Items() {
		fmt.Printf("%3d. [%s] %s by %s (%d likes)\n",
			i+1, item.Type, caption(item), item.UploaderName, item.Likes)
	}

	switch f.State() {
	case feed.StateExhausted:
		if len(f.Items()) == 0 {
			fmt.Println("no memes yet")
		} else {
			fmt.Println("-- end of feed --")
		}
	case feed.StateErrored:
		fmt.Printf("-- load failed: %v (r to retry) --\n", f.Err())
	}
}

func caption(item feed.Item) string {
	if item.Caption == "" {
		return "(no caption)"
	}
	return item.Caption
}
