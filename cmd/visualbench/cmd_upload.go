package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/storage"
)

func newUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <doc-id> <pages-dir>",
		Short: "Publish reference page captures as a baseline",
		Long: `Upload page_*.png captures and a manifest to baseline blob storage.

Credentials come from the environment: AZURE_STORAGE_ACCOUNT and
AZURE_STORAGE_KEY. The doc id is normalized to a lowercase
storage-safe form; the baseline revision is derived from the page
digests so re-uploading identical captures lands in the same folder.`,
		Args:          cobra.ExactArgs(2),
		RunE:          runUpload,
		SilenceErrors: true,
	}
	cmd.Flags().String("container", "baselines", "Blob container for baseline captures")
	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	account := os.Getenv("AZURE_STORAGE_ACCOUNT")
	key := os.Getenv("AZURE_STORAGE_KEY")
	if account == "" || key == "" {
		return fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY must be set")
	}

	container, _ := cmd.Flags().GetString("container")
	uploader, err := storage.NewAzureBaselineUploader(account, key, container)
	if err != nil {
		return err
	}

	manifest, err := uploader.UploadBaseline(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d pages as %s (%s)\n",
		len(manifest.Files), manifest.DocID, manifest.DocRev)
	return nil
}
