package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/spf13/cobra"
)

var exportTitle string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List the recipes saved to your library",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		saved, err := e.ctrl.SavedRecipes()
		if err != nil {
			return err
		}
		if len(saved) == 0 {
			fmt.Println("📚 No saved recipes. Use 'recipebook save <id>' to keep one.")
			return nil
		}

		columns := []table.Column{
			{Title: "Title", Width: 40},
			{Title: "Category", Width: 16},
			{Title: "Likes", Width: 6},
			{Title: "Saved", Width: 12},
			{Title: "ID", Width: 26},
		}

		rows := make([]table.Row, 0, len(saved))
		for _, s := range saved {
			rows = append(rows, table.Row{
				truncateString(s.Recipe.Title, 38),
				s.Recipe.Category,
				fmt.Sprintf("%d", s.Recipe.Likes),
				s.SavedAt.Format("2006-01-02"),
				s.Recipe.ID,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		st := table.DefaultStyles()
		st.Header = st.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		st.Selected = st.Selected.Foreground(lipgloss.NoColor{}).Bold(false)
		t.SetStyles(st)

		fmt.Printf("\n📚 Library (%d recipes)\n\n", len(saved))
		fmt.Println(t.View())
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Fetch a recipe and keep it in your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		recipe, err := e.ctrl.Details(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch recipe: %w", err)
		}
		if err := e.ctrl.SaveRecipe(recipe); err != nil {
			return err
		}
		fmt.Printf("✅ Saved '%s'\n", recipe.Title)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a recipe from your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		return e.ctrl.RemoveSaved(args[0])
	},
}

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List unpublished drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		drafts, err := e.ctrl.Drafts()
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			fmt.Println("No drafts.")
			return nil
		}

		t := newTable("Title", "Steps", "Updated", "ID")
		for _, d := range drafts {
			title := d.Title
			if title == "" {
				title = "(untitled)"
			}
			t.Row(truncateString(title, 40), fmt.Sprintf("%d", len(d.Steps)), d.UpdatedAt.Format("2006-01-02 15:04"), d.ID)
		}
		fmt.Println(t)
		fmt.Println(styles.MutedStyle.Render("Open one with: recipebook --open '/create?draft=<id>'"))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your saved recipes as an EPUB cookbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		done := make(chan struct{})
		go func() {
			for {
				select {
				case p := <-e.ctrl.ExportProgress():
					if p.Total > 0 {
						fmt.Printf("  %s (%d/%d) %s\n", p.Status, p.Current, p.Total, p.Title)
					}
				case <-done:
					return
				}
			}
		}()

		path, err := e.ctrl.ExportSaved(cmd.Context(), exportTitle)
		close(done)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("✅ Cookbook written to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportTitle, "title", "My Cookbook", "cookbook title, also used for the file name")

	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(exportCmd)
}
