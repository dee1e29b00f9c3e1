package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/UnitVectorY-Labs/languagerankings/internal/models"
	"github.com/charmbracelet/log"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ReposPerPage is the page size of the repository listing. Only the first
// page is read.
const ReposPerPage = 100

// Options configures a crawl.
type Options struct {
	User    string
	Token   string
	BaseURL string

	// Location of the Linguist languages.yml file.
	LinguistOwner string
	LinguistRepo  string
	LinguistPath  string
}

// Crawler fetches language statistics and metadata from the GitHub API.
type Crawler struct {
	client *github.Client
	logger *log.Logger
}

// NewClient creates a GitHub client. With an empty token requests are
// unauthenticated; otherwise a bearer token is attached to every request.
func NewClient(ctx context.Context, token, baseURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// New wraps client. A nil logger uses log.Default().
func New(client *github.Client, logger *log.Logger) *Crawler {
	if logger == nil {
		logger = log.Default()
	}
	return &Crawler{client: client, logger: logger}
}

// Run fetches the Linguist metadata, the user's profile and the language
// aggregate, in that order. The first failing request aborts the run.
func Run(ctx context.Context, opts Options, logger *log.Logger) (*models.CrawlResult, error) {
	client, err := NewClient(ctx, opts.Token, opts.BaseURL)
	if err != nil {
		return nil, err
	}
	c := New(client, logger)

	if opts.Token == "" {
		c.logger.Warn("GITHUB_TOKEN not set, using unauthenticated requests")
	}

	yml, err := c.LinguistFile(ctx, opts.LinguistOwner, opts.LinguistRepo, opts.LinguistPath)
	if err != nil {
		return nil, err
	}

	profile, err := c.Profile(ctx, opts.User)
	if err != nil {
		return nil, err
	}

	agg, err := c.LanguageAggregate(ctx, opts.User)
	if err != nil {
		return nil, err
	}

	return &models.CrawlResult{
		User:         opts.User,
		Profile:      profile,
		LinguistYAML: yml,
		Aggregate:    agg,
	}, nil
}

// LanguageAggregate sums the language bytes of every repository owned by user.
func (c *Crawler) LanguageAggregate(ctx context.Context, user string) (*models.LanguageAggregate, error) {
	c.logger.Info("Fetching repositories", "user", user)
	opt := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: ReposPerPage},
	}
	repos, _, err := c.client.Repositories.List(ctx, user, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	c.logger.Info("Found repositories", "count", len(repos))

	agg := models.NewLanguageAggregate()
	for _, repo := range repos {
		languagesURL := repo.GetLanguagesURL()
		if languagesURL == "" {
			c.logger.Debug("Skipping repository without languages URL", "repo", repo.GetName())
			continue
		}

		languages, err := c.repoLanguages(ctx, languagesURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch languages for %s: %w", repo.GetName(), err)
		}
		c.logger.Debug("Fetched languages", "repo", repo.GetName(), "languages", len(languages))
		agg.AddAll(languages)
	}

	c.logger.Info("Aggregated languages", "count", agg.Len())
	return agg, nil
}

// repoLanguages follows a repository's languages_url as returned by the API.
func (c *Crawler) repoLanguages(ctx context.Context, languagesURL string) (models.LanguageBytes, error) {
	req, err := c.client.NewRequest(http.MethodGet, languagesURL, nil)
	if err != nil {
		return nil, err
	}

	var languages models.LanguageBytes
	if _, err := c.client.Do(ctx, req, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// LinguistFile downloads and decodes the languages.yml document.
func (c *Crawler) LinguistFile(ctx context.Context, owner, repo, path string) (string, error) {
	c.logger.Info("Fetching Linguist metadata", "repo", owner+"/"+repo, "path", path)
	file, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if file == nil {
		return "", fmt.Errorf("failed to fetch %s: path is a directory", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return content, nil
}

// Profile fetches the public profile of user.
func (c *Crawler) Profile(ctx context.Context, user string) (*models.Profile, error) {
	c.logger.Info("Fetching profile", "user", user)
	u, _, err := c.client.Users.Get(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &models.Profile{
		Login: u.GetLogin(),
		Name:  u.GetName(),
	}, nil
}
