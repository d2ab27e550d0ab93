package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportedRequest mirrors types.WriteRequest with a plain item, since the
// SDK attribute values do not encode to readable JSON.
type exportedRequest struct {
	PutRequest struct {
		Item map[string]any `json:"Item"`
	} `json:"PutRequest"`
}

func newExportCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export a catalog file as DynamoDB batch write requests",
		Long: `Load a catalog file and print one put request per entity, keyed by table name, as JSON.

Examples:
  vendia export catalog.yaml
  vendia export --table products --shards 16 catalog.yaml | jq '.[][].PutRequest.Item.pk'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadCatalog(cmd, v, args[0])
			if err != nil {
				return err
			}

			requests, err := f.Store().WriteRequests()
			if err != nil {
				return err
			}

			out := make(map[string][]exportedRequest, len(requests))
			for table, reqs := range requests {
				for _, req := range reqs {
					var er exportedRequest
					if err := attributevalue.UnmarshalMap(req.PutRequest.Item, &er.PutRequest.Item); err != nil {
						return fmt.Errorf("decode item: %w", err)
					}
					out[table] = append(out[table], er)
				}
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(out)
		},
	}
}
