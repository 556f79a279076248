package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"skillsync/internal/api"
	"skillsync/internal/app"
	"skillsync/internal/config"
	"skillsync/internal/database"
	"skillsync/internal/diff"
	"skillsync/internal/encryption"
	"skillsync/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a SyncApp. The caller must defer a.Close().
func newApp(ctx context.Context) (*app.SyncApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run `skillsync config init` first): %w", err)
	}

	a, err := app.NewSyncApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readSecret prompts on stderr and reads a line from stdin with echo off.
// When stdin is not a terminal it falls back to a plain line read.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// parseVersion converts a positional version argument.
func parseVersion(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q", s)
	}
	return v, nil
}

var (
	markAdded    = color.New(color.FgGreen).SprintFunc()
	markModified = color.New(color.FgYellow).SprintFunc()
	markDeleted  = color.New(color.FgRed).SprintFunc()
)

// statusMark returns the colored one-letter marker for a diff status.
func statusMark(s model.DiffStatus) string {
	switch s {
	case model.DiffAdded:
		return markAdded("A")
	case model.DiffModified:
		return markModified("M")
	case model.DiffDeleted:
		return markDeleted("D")
	default:
		return "?"
	}
}

// printUnifiedDiff writes a unified diff with added and removed lines colorized.
func printUnifiedDiff(text string) {
	header := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			header.Println(line)
		case strings.HasPrefix(line, "@@"):
			hunk.Println(line)
		case strings.HasPrefix(line, "+"):
			added.Println(line)
		case strings.HasPrefix(line, "-"):
			removed.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Sync skill workspaces with the SkillHub platform",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// Bring the tracking database up to the current schema.
		db, err := database.NewDatabaseFromConfig(cfg.Database)
		if err != nil {
			return fmt.Errorf("creating database: %w", err)
		}
		defer db.Close()
		if err := db.MigrateUp(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		if encrypt, _ := cmd.Flags().GetBool("encrypt"); encrypt {
			passphrase, err := readSecret("Passphrase for the export key: ")
			if err != nil {
				return err
			}
			confirm, err := readSecret("Confirm passphrase: ")
			if err != nil {
				return err
			}
			if passphrase != confirm {
				return fmt.Errorf("passphrases do not match")
			}

			enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
			if err != nil {
				return fmt.Errorf("creating encryptor: %w", err)
			}
			if err := enc.Setup(passphrase); err != nil {
				return fmt.Errorf("generating export keys: %w", err)
			}
			fmt.Println("Export encryption keys generated.")
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		baseURL := cfg.APIBaseURL
		if baseURL == "" {
			baseURL = api.DefaultBaseURL
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("API URL:    %s\n", baseURL)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Token Path: %s\n", cfg.TokenPath)
		fmt.Printf("Cache TTL:  %ds\n", cfg.CacheTTLSeconds)
		fmt.Printf("Database:   %s\n", cfg.Database.Type)
		fmt.Printf("Archive:    %s (%s)\n", cfg.Archive.Type, cfg.Archive.Name)
		return nil
	},
}

// auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage platform credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the platform API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		token, err := readSecret("Paste your SkillHub API token: ")
		if err != nil {
			return err
		}

		if err := a.Login(token); err != nil {
			return fmt.Errorf("storing token: %w", err)
		}

		fmt.Println("Token stored.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		loggedIn, err := a.AuthStatus()
		if err != nil {
			return fmt.Errorf("checking token: %w", err)
		}

		if loggedIn {
			fmt.Println("Logged in: a token is stored.")
		} else {
			fmt.Println("Not logged in. Run `skillsync auth login`.")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(); err != nil {
			return fmt.Errorf("removing token: %w", err)
		}

		fmt.Println("Token removed.")
		return nil
	},
}

// link command
var linkCmd = &cobra.Command{
	Use:   "link [SKILL_ID]",
	Short: "Link the current directory to a skill, or list linked workspaces",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			workspaces, err := a.Workspaces()
			if err != nil {
				return err
			}
			if len(workspaces) == 0 {
				fmt.Println("No linked workspaces.")
				return nil
			}
			for _, ws := range workspaces {
				name := ws.SkillSlug
				if name == "" {
					name = ws.SkillID
				}
				fmt.Printf("%-32s  %s\n", name, ws.RootPath)
			}
			return nil
		}

		slug, _ := cmd.Flags().GetString("slug")
		platform, _ := cmd.Flags().GetString("platform")

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if err := a.Link(cwd, args[0], slug, platform); err != nil {
			return fmt.Errorf("linking workspace: %w", err)
		}

		name := filepath.Base(cwd)
		if doc, err := a.SkillDoc(cwd); err == nil && doc != nil {
			name = doc.Name
		}

		fmt.Printf("Linked %s to skill %s\n", name, args[0])
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local changes against the remote head",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		report, err := a.CheckChanges(cmd.Context(), cwd)
		if err != nil {
			return err
		}

		name := report.SkillSlug
		if name == "" {
			name = report.SkillID
		}
		fmt.Printf("Skill: %s (local version %d, remote version %d)\n\n", name, report.LocalVersion, report.RemoteVersion)

		if !report.Result.HasChanges {
			fmt.Println("Workspace matches the remote head.")
			return nil
		}

		for _, p := range report.Result.Added {
			fmt.Printf("%s %s\n", markAdded("A"), p)
		}
		for _, p := range report.Result.Modified {
			fmt.Printf("%s %s\n", markModified("M"), p)
		}
		for _, p := range report.Result.Deleted {
			fmt.Printf("%s %s\n", markDeleted("D"), p)
		}

		fmt.Printf("\n%d added, %d modified, %d deleted\n",
			len(report.Result.Added), len(report.Result.Modified), len(report.Result.Deleted))
		return nil
	},
}

// push command
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the workspace as a new version",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, _ := cmd.Flags().GetString("message")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		out, err := a.Push(cmd.Context(), cwd, summary)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		for _, skipped := range out.Skipped {
			fmt.Printf("%s binary file not uploaded: %s\n", markModified("!"), skipped)
		}
		fmt.Printf("Pushed version %d (%d files)\n", out.Version, out.FileCount)
		return nil
	},
}

// pull command
var pullCmd = &cobra.Command{
	Use:   "pull [VERSION]",
	Short: "Download a version into the workspace (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := 0
		if len(args) > 0 {
			v, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			version = v
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		out, err := a.Pull(cmd.Context(), cwd, version)
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		fmt.Printf("Pulled version %d (%d files)\n", out.Version, out.FileCount)
		return nil
	},
}

// rollback command
var rollbackCmd = &cobra.Command{
	Use:   "rollback VERSION",
	Short: "Restore an older version as a new head version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		out, err := a.Rollback(cmd.Context(), cwd, version)
		if err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}

		fmt.Printf("Restored version %d as new version %d (%d files)\n", out.Restored, out.NewVersion, out.FileCount)
		return nil
	},
}

// diff command
var diffCmd = &cobra.Command{
	Use:   "diff [FROM] [TO]",
	Short: "Compare two versions of the linked skill",
	Long: `Compare two versions of the linked skill.

With no arguments, compares the previous version against the head.
With one argument, compares that version against the current head.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		withContent, _ := cmd.Flags().GetBool("content")

		from, to := 0, 0
		var err error
		if len(args) > 0 {
			if from, err = parseVersion(args[0]); err != nil {
				return err
			}
		}
		if len(args) > 1 {
			if to, err = parseVersion(args[1]); err != nil {
				return err
			}
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		meta, err := a.LinkedSkill(cwd)
		if err != nil {
			return err
		}

		d, err := a.VersionDiff(cmd.Context(), meta.SkillID, from, to, withContent)
		if err != nil {
			return err
		}

		if len(d.Changes) == 0 {
			fmt.Println("No changes.")
			return nil
		}

		for _, c := range d.Changes {
			fmt.Printf("%s %s\n", statusMark(c.Status), c.Filepath)
			if withContent {
				text, err := diff.Unified(c.OldContent, c.NewContent, "a/"+c.Filepath, "b/"+c.Filepath)
				if err != nil {
					return err
				}
				if text != "" {
					printUnifiedDiff(text)
					fmt.Println()
				}
			}
		}

		fmt.Printf("\n%d added, %d modified, %d deleted\n", d.Summary.Added, d.Summary.Modified, d.Summary.Deleted)
		return nil
	},
}

// versions command
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List all versions of the linked skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		meta, err := a.LinkedSkill(cwd)
		if err != nil {
			return err
		}

		entries, err := a.Versions(cmd.Context(), meta.SkillID)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No versions.")
			return nil
		}

		for _, e := range entries {
			current := ""
			if e.Version == meta.Version {
				current = "  [current]"
			}
			fmt.Printf("v%-4d %s  %-7s %4d files  %8d bytes  %s%s\n",
				e.Version,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Source,
				e.FileCount,
				e.TotalSize,
				e.ChangeSummary,
				current,
			)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Page through the linked skill's version history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		withDiff, _ := cmd.Flags().GetBool("diff")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		meta, err := a.LinkedSkill(cwd)
		if err != nil {
			return err
		}

		page, err := a.History(cmd.Context(), meta.SkillID, model.HistoryOptions{
			Limit:       limit,
			Offset:      offset,
			IncludeDiff: withDiff,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%d versions total\n\n", page.TotalVersions)
		for _, e := range page.Versions {
			fmt.Printf("v%-4d %s  %-7s %s\n",
				e.Version,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Source,
				e.ChangeSummary,
			)
			if e.Diff != nil {
				fmt.Printf("      %s %s %s\n",
					markAdded(fmt.Sprintf("+%d", e.Diff.Summary.Added)),
					markModified(fmt.Sprintf("~%d", e.Diff.Summary.Modified)),
					markDeleted(fmt.Sprintf("-%d", e.Diff.Summary.Deleted)),
				)
			}
		}
		return nil
	},
}

// log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show locally recorded sync operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		// Inside a linked workspace the log is scoped to its skill,
		// unless --all asks for everything.
		skillID := ""
		if !all {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			if meta, err := a.LinkedSkill(cwd); err == nil {
				skillID = meta.SkillID
			}
		}

		ops, err := a.LocalLog(skillID, limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No sync operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%-4d %-9s v%-4d %s  %-9s %-8s %s\n",
				op.ID,
				op.Operation,
				op.Version,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Detail,
			)
		}
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Store an archive of the linked skill, or retrieve a stored one",
	RunE: func(cmd *cobra.Command, args []string) error {
		retrieveKey, _ := cmd.Flags().GetString("retrieve")
		output, _ := cmd.Flags().GetString("output")
		decrypt, _ := cmd.Flags().GetBool("decrypt")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if retrieveKey != "" {
			passphrase := ""
			if decrypt {
				passphrase, err = readSecret("Passphrase for the export key: ")
				if err != nil {
					return err
				}
			}

			if output == "" {
				output = filepath.Base(strings.TrimSuffix(retrieveKey, ".age"))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()

			if err := a.RetrieveExport(cmd.Context(), retrieveKey, f, passphrase); err != nil {
				os.Remove(output)
				return fmt.Errorf("retrieving archive: %w", err)
			}

			fmt.Printf("Wrote %s\n", output)
			return nil
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		out, err := a.Export(cmd.Context(), cwd)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		encrypted := ""
		if out.Encrypted {
			encrypted = ", encrypted"
		}
		fmt.Printf("Exported version %d to archive %s (%d bytes%s)\n", out.Version, out.Key, out.Size, encrypted)
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the skill catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		skills, err := a.Search(cmd.Context(), model.SearchQuery{Query: args[0], Limit: limit})
		if err != nil {
			return err
		}

		if len(skills) == 0 {
			fmt.Println("No skills found.")
			return nil
		}

		for _, s := range skills {
			fmt.Printf("%-32s %-24s %s\n", s.Slug, s.Author, s.Name)
		}
		return nil
	},
}

// catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the public skill catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageNum, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")
		sortBy, _ := cmd.Flags().GetString("sort")
		skillType, _ := cmd.Flags().GetString("type")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		page, err := a.Catalog(cmd.Context(), model.CatalogQuery{
			Page:     pageNum,
			Limit:    limit,
			Category: category,
			SortBy:   sortBy,
			Type:     skillType,
		})
		if err != nil {
			return err
		}

		if len(page.Skills) == 0 {
			fmt.Println("No skills found.")
			return nil
		}

		fmt.Printf("%d skills total\n\n", page.Total)
		for _, s := range page.Skills {
			stars := ""
			if s.GithubStars != nil {
				stars = fmt.Sprintf("%d stars", *s.GithubStars)
			}
			fmt.Printf("%-32s %-16s %-10s %s\n", s.Slug, s.Category, stars, s.Name)
		}
		return nil
	},
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info SLUG",
	Short: "Show the full record of a published skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:        %s\n", d.Name)
		fmt.Printf("Slug:        %s\n", d.Slug)
		fmt.Printf("ID:          %s\n", d.ID)
		fmt.Printf("Author:      %s\n", d.Author)
		fmt.Printf("Category:    %s\n", d.Category)
		if d.LatestVersion > 0 {
			fmt.Printf("Version:     %d\n", d.LatestVersion)
		}
		if d.SimpleScore != nil {
			fmt.Printf("Rating:      %.1f (%s)\n", *d.SimpleScore, d.SimpleRating)
		}
		if d.RepoURL != "" {
			fmt.Printf("Repository:  %s\n", d.RepoURL)
		}
		if d.Description != "" {
			fmt.Printf("\n%s\n", d.Description)
		}
		if d.Readme != "" {
			fmt.Printf("\n%s\n", d.Readme)
		}
		return nil
	},
}

// tree command
var treeCmd = &cobra.Command{
	Use:   "tree [SKILL_ID]",
	Short: "List the remote file tree of a skill",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var skillID string
		if len(args) > 0 {
			skillID = args[0]
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			meta, err := a.LinkedSkill(cwd)
			if err != nil {
				return err
			}
			skillID = meta.SkillID
		}

		entries, err := a.Tree(cmd.Context(), skillID)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No files.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%-48s %8d bytes\n", e.Path, e.Size)
		}
		return nil
	},
}

// show command
var showCmd = &cobra.Command{
	Use:   "show [SKILL_ID] PATH",
	Short: "Print one file from a skill's remote tree",
	Long: `Print one file from a skill's remote tree.

With a single argument, the path is resolved against the skill linked to
the current directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var skillID, path string
		if len(args) == 2 {
			skillID, path = args[0], args[1]
		} else {
			path = args[0]
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			meta, err := a.LinkedSkill(cwd)
			if err != nil {
				return err
			}
			skillID = meta.SkillID
		}

		content, err := a.FileContent(cmd.Context(), skillID, path)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().Bool("encrypt", false, "Generate export encryption keys (prompts for a passphrase)")

	// auth subcommands
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().String("slug", "", "Skill slug to record in the workspace metadata")
	linkCmd.Flags().String("platform", api.DefaultBaseURL, "Platform URL to record in the workspace metadata")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().StringP("message", "m", "", "Change summary for the new version")
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("content", false, "Include line-level content diffs")
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of versions to show")
	historyCmd.Flags().Int("offset", 0, "Number of versions to skip")
	historyCmd.Flags().Bool("diff", false, "Annotate each version with its change counts")
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	logCmd.Flags().Bool("all", false, "Show operations for all skills")
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("retrieve", "", "Retrieve a stored archive by key instead of exporting")
	exportCmd.Flags().StringP("output", "o", "", "Destination file when retrieving")
	exportCmd.Flags().Bool("decrypt", false, "Decrypt the retrieved archive (prompts for the passphrase)")
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 20, "Maximum number of results")
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Int("page", 0, "Catalog page to fetch")
	catalogCmd.Flags().IntP("limit", "n", 0, "Results per page")
	catalogCmd.Flags().String("category", "", "Filter by category")
	catalogCmd.Flags().String("sort", "", "Sort order")
	catalogCmd.Flags().String("type", "", "Filter by skill type")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(showCmd)
}
