package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacentio/vendia/catalog"
	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/tree"
)

func newTreeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the entity tree of a catalog file",
		Long: `Load a catalog file and print every product with its listings, indented by depth.

Examples:
  vendia tree catalog.yaml
  vendia tree --shards 16 catalog.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, products, err := loadCatalog(cmd, v, args[0])
			if err != nil {
				return err
			}
			for _, p := range products {
				printTree(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

// printTree writes root and its descendants in pre-order, one per line.
func printTree(w io.Writer, root tree.Noder) {
	nodes := append([]tree.Noder{root}, root.TreeNode().Descendants()...)
	for _, n := range nodes {
		indent := strings.Repeat("  ", n.TreeNode().Depth())
		fmt.Fprintf(w, "%s%s\n", indent, label(n))
	}
}

func label(n tree.Noder) string {
	switch v := n.(type) {
	case *catalog.Product:
		return entity.Key(v) + " " + v.Name
	case *catalog.Listing:
		s := entity.Key(v) + " " + v.Name
		if len(v.Options) == 0 {
			return s
		}
		opts := make([]string, 0, len(v.Options))
		for _, o := range v.Options {
			opts = append(opts, fmt.Sprintf("%s %g %s", o.Name, o.Quantity, o.Unit))
		}
		return s + " [" + strings.Join(opts, ", ") + "]"
	case entity.Entity:
		return entity.Key(v)
	default:
		return "node"
	}
}
