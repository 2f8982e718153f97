package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List or manage expense categories",
	Args:    cobra.NoArgs,
	RunE:    runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an expense category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a user-added expense category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	categoriesCmd.AddCommand(categoriesAddCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	cats, err := appLedger.Categories(cmd.Context())
	if err != nil {
		return err
	}

	printTitle("지출 카테고리")
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		kind := "추가"
		if c.IsDefault {
			kind = "기본"
		}
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, kind})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "이름", "구분"},
		Rows:    rows,
	}))
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	c, err := appLedger.AddCategory(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("  #%d %s added\n", c.ID, c.Name)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	cats, err := appLedger.Categories(cmd.Context())
	if err != nil {
		return err
	}
	var target *model.Category
	for i := range cats {
		if cats[i].Name == args[0] || strconv.FormatInt(cats[i].ID, 10) == args[0] {
			target = &cats[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("category %q: %w", args[0], model.ErrNotFound)
	}
	if err := appLedger.DeleteCategory(cmd.Context(), target.ID); err != nil {
		return err
	}
	fmt.Printf("  %s deleted\n", target.Name)
	return nil
}
