package cmd

import (
	"errors"
	"fmt"
	"os"

	"pngmsg-tools/go/pkg/logbowl"
	"pngmsg-tools/go/pkg/png"

	"github.com/spf13/cobra"
)

// ErrReservedBit is returned by EncodeMessage in strict mode for a type code
// whose third letter is lowercase.
var ErrReservedBit = errors.New("chunk type has an invalid reserved bit")

var (
	encodeOutPath string
	encodeZstd    bool
	encodeStrict  bool
)

// EncodeOptions describes one encode invocation.
type EncodeOptions struct {
	InputPath  string
	ChunkType  string
	Message    string
	OutputPath string // empty: the result is discarded
	Compress   bool
	Strict     bool // reject type codes with an invalid reserved bit
}

// EncodeMessage appends a chunk carrying opts.Message to the input image and
// writes the result to opts.OutputPath.
func EncodeMessage(log logbowl.Logger, opts EncodeOptions) (*png.Chunk, error) {
	ct, err := png.ParseChunkType(opts.ChunkType)
	if err != nil {
		return nil, fmt.Errorf("invalid chunk type %q: %w", opts.ChunkType, err)
	}
	if !ct.IsValid() {
		if opts.Strict {
			return nil, fmt.Errorf("%w: %q", ErrReservedBit, opts.ChunkType)
		}
		log.Warn("chunk", "validate", "warning", "Embedding chunk type with invalid reserved bit", "type", ct.String())
	}
	if ct.IsCritical() {
		log.Warn("chunk", "validate", "warning", "Critical chunk type; decoders that do not know it will reject the image", "type", ct.String())
	}

	data := []byte(opts.Message)
	if opts.Compress {
		data = compressPayload(log, data)
	}
	chunk, err := png.NewChunk(ct, data)
	if err != nil {
		return nil, err
	}

	f, err := readPNGFile(log, opts.InputPath)
	if err != nil {
		return nil, err
	}
	f.AppendChunk(chunk)
	log.Info("chunk", "append", "success", "Appended message chunk", "type", ct.String(), "length", chunk.Length(), "crc", fmt.Sprintf("0x%08x", chunk.CRC()))

	if opts.OutputPath == "" {
		log.Warn("file", "write", "skip", "No output path given, encoded image discarded", "bytes", f.EncodedLen())
		return chunk, nil
	}
	if err := writePNGFile(log, opts.OutputPath, f); err != nil {
		return nil, err
	}
	log.Info("message", "encode", "success", "Message embedded", "path", opts.OutputPath)
	return chunk, nil
}

var encodeCmd = &cobra.Command{
	Use:   "encode <input.png> <chunk_type> <message> [output.png]",
	Short: "Embeds a message in a new chunk appended to a PNG file.",
	Args:  cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		out := encodeOutPath
		if len(args) == 4 {
			if out != "" && out != args[3] {
				log.Error("message", "validate", "error", "Output path given both as argument and --out", "arg", args[3], "flag", out)
				os.Exit(1)
			}
			out = args[3]
		}

		_, err := EncodeMessage(log, EncodeOptions{
			InputPath:  args[0],
			ChunkType:  args[1],
			Message:    args[2],
			OutputPath: out,
			Compress:   encodeZstd,
			Strict:     encodeStrict,
		})
		if err != nil {
			log.Error("message", "encode", "error", "Failed to encode message", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeOutPath, "out", "o", "", "Path for the output PNG file.")
	encodeCmd.Flags().BoolVar(&encodeZstd, "zstd", false, "Compress the message with zstd before embedding it.")
	encodeCmd.Flags().BoolVar(&encodeStrict, "strict", false, "Refuse chunk type codes with an invalid reserved bit.")
}
