package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourname/slicebread/pkg/uploadclient"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a local file in chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	f := uploadCmd.Flags()
	f.String("server", uploadproto.DefaultServerAddr, "upload server base URL")
	f.String("file-id", "", "upload id (random UUID when empty)")
	f.String("name", "", "file name on the server (defaults to the local base name)")
	f.Int64("chunk-size", 8<<20, "chunk size in bytes")
	f.Int("parts", 0, "split into this many chunks instead of --chunk-size")
	f.Int("concurrency", 4, "chunks sent in parallel")
	f.Bool("quiet", false, "do not render progress")
}

func runUpload(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	server, _ := f.GetString("server")
	fileID, _ := f.GetString("file-id")
	name, _ := f.GetString("name")
	chunkSize, _ := f.GetInt64("chunk-size")
	parts, _ := f.GetInt("parts")
	concurrency, _ := f.GetInt("concurrency")
	quiet, _ := f.GetBool("quiet")

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", args[0])
	}
	if name == "" {
		name = filepath.Base(args[0])
	}

	opts := []uploadclient.Option{
		uploadclient.WithChunkSize(chunkSize),
		uploadclient.WithParts(parts),
		uploadclient.WithConcurrency(concurrency),
	}
	if !quiet {
		opts = append(opts, uploadclient.WithProgress(cmd.ErrOrStderr()))
	}

	res, err := uploadclient.New(opts...).Upload(cmd.Context(), server, uploadclient.UploadRequest{
		FileID:   fileID,
		FileName: name,
		Reader:   file,
		Size:     info.Size(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s, %d chunks) as %s\n",
		res.FileName, humanize.Bytes(uint64(res.Size)), res.Parts, res.FileID)
	fmt.Fprintf(cmd.OutOrStdout(), uploadproto.FilePathFormat+"\n", server, res.FileID, res.FileName)

	return nil
}
