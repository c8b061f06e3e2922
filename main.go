// Command aes-ecb decrypts AES-128 ECB ciphertext, or picks out which
// of several ciphertexts was most likely produced by ECB.
//
//	aes-ecb [-config file] [-key hex] [-format base64|hex|raw]
//	        [-workers n] [-unpad] [-detect] [-v] [file ...]
//
// With no files, standard input is read. Files ending in .zst or .lz4
// are decompressed first.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sys/cpu"

	aesgo "github.com/mario-areias/aes-ecb/aes-go"
	"github.com/mario-areias/aes-ecb/codec"
	"github.com/mario-areias/aes-ecb/config"
	"github.com/mario-areias/aes-ecb/padding"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	conf, files, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := log.New(io.Discard, "", 0)
	if conf.Verbose {
		logger = log.New(stderr, "", log.Lshortfile)
	}
	format, _ := codec.ParseFormat(conf.Format)
	logger.Printf("run %s: format=%s workers=%d hardware-aes=%v",
		uuid.New(), format, conf.Workers, hardwareAES())

	if len(files) == 0 {
		files = []string{"-"}
	}

	t := &task{conf: conf, format: format, logger: logger, stdout: stdout}
	if !conf.Detect {
		t.key, err = codec.DecodeKey(conf.Key)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	status := 0
	for _, name := range files {
		var in io.ReadCloser
		if name == "-" {
			in = io.NopCloser(stdin)
		} else {
			in, err = codec.Open(name)
			if err != nil {
				fmt.Fprintf(stderr, "can't open %q: %s\n", name, err)
				status = 1
				continue
			}
		}
		if conf.Detect {
			err = t.detect(name, in)
		} else {
			err = t.decrypt(name, in)
		}
		in.Close()
		if err != nil {
			fmt.Fprintf(stderr, "input %s: %s\n", name, err)
			status = 1
		}
	}
	return status
}

// parseArgs merges the optional config file with the command line.
// Flags that were given explicitly win over file values.
func parseArgs(args []string, stderr io.Writer) (config.Config, []string, error) {
	fs := flag.NewFlagSet("aes-ecb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML settings file")
		keyHex     = fs.String("key", "", "hex encoded 128 bit key")
		format     = fs.String("format", codec.Base64.String(), "input encoding: base64, hex or raw")
		workers    = fs.Int("workers", 1, "goroutines used to decrypt blocks")
		unpad      = fs.Bool("unpad", false, "strip PKCS#7 padding after decryption")
		detect     = fs.Bool("detect", false, "report the input line most likely encrypted with ECB")
		verbose    = fs.Bool("v", false, "log diagnostics to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, err
	}

	conf := config.Default()
	if *configPath != "" {
		var err error
		conf, err = config.Load(*configPath)
		if err != nil {
			return conf, nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "key":
			conf.Key = *keyHex
		case "format":
			conf.Format = *format
		case "workers":
			conf.Workers = *workers
		case "unpad":
			conf.Unpad = *unpad
		case "detect":
			conf.Detect = *detect
		case "v":
			conf.Verbose = *verbose
		}
	})
	if err := conf.Validate(); err != nil {
		return conf, nil, err
	}
	return conf, fs.Args(), nil
}

type task struct {
	conf   config.Config
	format codec.Format
	key    []byte
	logger *log.Logger
	stdout io.Writer
}

func (t *task) decrypt(name string, in io.Reader) error {
	ciphertext, err := codec.Decode(t.format, in)
	if err != nil {
		return err
	}
	t.logger.Printf("%s: %d blocks", name, len(ciphertext)/aesgo.BlockSize)

	plaintext, err := aesgo.DecryptECBParallel(t.key, ciphertext, t.conf.Workers)
	if err != nil {
		return err
	}
	if t.conf.Unpad {
		plaintext, err = padding.Unpad(plaintext, aesgo.BlockSize)
		if err != nil {
			return err
		}
	}
	_, err = t.stdout.Write(plaintext)
	return err
}

func (t *task) detect(name string, in io.Reader) error {
	lines, err := codec.DecodeLines(t.format, in)
	if err != nil {
		return err
	}
	t.logger.Printf("%s: %d candidates", name, len(lines))

	best, score := aesgo.DetectECB(lines)
	if best < 0 {
		fmt.Fprintf(t.stdout, "%s: no repeated blocks\n", name)
		return nil
	}
	fmt.Fprintf(t.stdout, "%s: candidate %d has %d repeated blocks\n%s\n",
		name, best+1, score, hex.EncodeToString(lines[best]))
	return nil
}

func hardwareAES() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES
}
