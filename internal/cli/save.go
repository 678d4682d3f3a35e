package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tablink/internal/raindrop"
	"github.com/aidanlsb/tablink/internal/ui"
)

var (
	saveTitle      string
	saveTags       []string
	saveCollection int
	saveLink       string
)

type saveResult struct {
	ID         int64    `json:"id"`
	Link       string   `json:"link"`
	Title      string   `json:"title,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Collection int      `json:"collection"`
	Source     string   `json:"source"`
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current tab to Raindrop.io",
	Long: `Resolve the current link (or take --link) and save it as a Raindrop.io
bookmark. Tags from config are added to any --tag values.

Examples:
  tablink save
  tablink save --tag reading --tag go
  tablink save --link https://go.dev --title "The Go Programming Language"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		if strings.TrimSpace(c.Raindrop.Token) == "" {
			return handleError(ErrMissingToken, raindrop.ErrMissingToken,
				"Set raindrop.token in config or TABLINK_RAINDROP_TOKEN")
		}

		ctx := commandContext(cmd)
		link, source := strings.TrimSpace(saveLink), "flag"
		if link != "" {
			if err := validateLink(link); err != nil {
				return handleError(ErrInvalidInput, err, "Pass a full http(s) URL")
			}
		} else {
			r, err := newResolver(c, logger)
			if err != nil {
				return handleError(ErrScriptsInvalid, err, "Fix scripts_file or remove it to use the built-in browser list")
			}
			res, err := runResolve(ctx, r)
			if err != nil {
				return resolutionErrorResponse(err)
			}
			link, source = res.URL, string(res.Source)
		}

		collection := c.Raindrop.Collection
		if cmd.Flags().Changed("collection") {
			collection = saveCollection
		}
		tags := append(append([]string{}, c.Raindrop.Tags...), saveTags...)

		client := raindrop.New(c.Raindrop.BaseURL, c.Raindrop.Token)
		item, err := client.CreateRaindrop(ctx, raindrop.Bookmark{
			Link:         link,
			Title:        saveTitle,
			Tags:         tags,
			CollectionID: collection,
		})
		if err != nil {
			return raindropErrorResponse(err)
		}

		out := saveResult{
			ID:         item.ID,
			Link:       item.Link,
			Title:      item.Title,
			Tags:       item.Tags,
			Collection: collection,
			Source:     source,
		}
		if out.Link == "" {
			out.Link = link
		}

		if isJSONOutput() {
			outputSuccess(out, nil)
			return nil
		}
		fmt.Println(ui.Successf("Saved %s", ui.Accent.Render(out.Link)))
		fmt.Println(ui.Hint(fmt.Sprintf("  raindrop %d", out.ID)))
		return nil
	},
}

func raindropErrorResponse(err error) error {
	if errors.Is(err, raindrop.ErrMissingToken) {
		return handleError(ErrMissingToken, err, "Set raindrop.token in config or TABLINK_RAINDROP_TOKEN")
	}
	var apiErr *raindrop.APIError
	if errors.As(err, &apiErr) {
		suggestion := ""
		if apiErr.Status == 401 || apiErr.Status == 403 {
			suggestion = "Check that the Raindrop.io token is valid"
		}
		return handleErrorWithDetails(ErrRaindropError, apiErr.Error(), suggestion,
			map[string]int{"status": apiErr.Status})
	}
	return handleError(ErrRaindropError, err, "")
}

// validateLink accepts absolute http(s) URLs.
func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid link %q", link)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported link scheme %q (must be http/https)", u.Scheme)
	}
	return nil
}

func init() {
	saveCmd.Flags().StringVar(&saveTitle, "title", "", "Bookmark title (Raindrop fills it in when empty)")
	saveCmd.Flags().StringSliceVarP(&saveTags, "tag", "t", nil, "Tag to add (repeatable)")
	saveCmd.Flags().IntVar(&saveCollection, "collection", raindrop.UnsortedCollection, "Collection id (-1 is Unsorted)")
	saveCmd.Flags().StringVar(&saveLink, "link", "", "Save this URL instead of resolving one")
	rootCmd.AddCommand(saveCmd)
}
