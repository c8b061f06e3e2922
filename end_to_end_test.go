package main

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"

	aesgo "github.com/mario-areias/aes-ecb/aes-go"
	"github.com/mario-areias/aes-ecb/key"
	"github.com/mario-areias/aes-ecb/padding"
)

const (
	exerciseKey     = "9c1501ffb829537afba091def401a25c"
	exercisePayload = "wFHE//yjH+f8ZNyYulYNmDcBxXOgLkqTFp5jcyiO6wVf7WGDdECNqhUuG9TMW6sP\n" +
		"exwZineeuL0xuuXdLP8BrxWV+XNHdR/yBAVgnOSDRoiAxugMHjs06GuRF/ihwFQJ\n" +
		"1qhhuwAXzo7k7DfG5s/JmGkw+i9BcnnO4QBnqixHzzuv0kFyUpRW4O1hlIyr5bo3\n" +
		"r0aCB9FlVf+tB8f9SteYZ9Y12G+f1n3n1hVSdOiAMuU1qfgy6VmH350PrbdwNv5K\n"
	exerciseText = "I know you wanted me to stay\n" +
		"But I can't ignore the crazy visions of me\u2005in\u2005LA\n" +
		"And I heard\u2005that there's a special place\n" +
		"Where boys\u2005and girls can all be queens every single day\n"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// stdEncryptECB pads and encrypts with the standard library, one block at a time.
func stdEncryptECB(t *testing.T, plaintext, k []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(k)
	if err != nil {
		t.Fatal(err)
	}
	buf := padding.Pad(plaintext, aes.BlockSize)
	for i := 0; i < len(buf); i += aes.BlockSize {
		block.Encrypt(buf[i:], buf[i:])
	}
	return buf
}

func TestDecryptExercise(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "padding kept",
			args: []string{"-key", exerciseKey},
			want: exerciseText + strings.Repeat("\t", 9),
		},
		{
			name: "unpadded",
			args: []string{"-key", exerciseKey, "-unpad"},
			want: exerciseText,
		},
		{
			name: "parallel",
			args: []string{"-key", exerciseKey, "-unpad", "-workers", "5"},
			want: exerciseText,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, exercisePayload, test.args...)
			if code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			if stdout != test.want {
				t.Errorf("Got     : %q\nExpected: %q", stdout, test.want)
			}
		})
	}
}

func TestDecryptStdCiphertext(t *testing.T) {
	k := key.Bit128()
	plaintext := []byte("Let's test if this is working!")
	ct := stdEncryptECB(t, plaintext, k.GetBytes())

	path := writeTemp(t, "ct.hex", []byte(hex.EncodeToString(ct)+"\n"))
	code, stdout, stderr := runCmd(t, "", "-key", hex.EncodeToString(k.GetBytes()), "-format", "hex", "-unpad", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != string(plaintext) {
		t.Errorf("Decrypted text does not match plaintext. Got: %s, Expected: %s", stdout, plaintext)
	}

	direct, err := aesgo.DecryptECB(k.GetBytes(), ct)
	if err != nil {
		t.Fatal(err)
	}
	unpadded, err := padding.Unpad(direct, aesgo.BlockSize)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(unpadded, plaintext) {
		t.Errorf("DecryptECB gave %q", unpadded)
	}
}

func TestDecryptCompressedFile(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(exercisePayload)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, "7.txt.zst", buf.Bytes())

	code, stdout, stderr := runCmd(t, "", "-key", exerciseKey, "-unpad", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != exerciseText {
		t.Errorf("Got %q", stdout)
	}
}

func TestConfigFile(t *testing.T) {
	conf := writeTemp(t, "aes-ecb.yaml", []byte("key: "+exerciseKey+"\nunpad: true\nworkers: 3\nverbose: true\n"))

	code, stdout, stderr := runCmd(t, exercisePayload, "-config", conf)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if stdout != exerciseText {
		t.Errorf("Got %q", stdout)
	}
	if !strings.Contains(stderr, "workers=3") || !strings.Contains(stderr, "12 blocks") {
		t.Errorf("verbose log missing details:\n%s", stderr)
	}
	t.Logf("hardware AES available: %v", hardwareAES())

	// flags override the file
	code, stdout, _ = runCmd(t, exercisePayload, "-config", conf, "-unpad=false")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasSuffix(stdout, strings.Repeat("\t", 9)) {
		t.Errorf("padding was stripped although -unpad=false was given")
	}
}

func TestDetect(t *testing.T) {
	e, err := aesgo.NewAES(key.Bit128())
	if err != nil {
		t.Fatal(err)
	}
	var plain [aesgo.BlockSize]byte
	copy(plain[:], "YELLOW SUBMARINE")
	repeated := e.EncryptBlock(plain)

	random := func(n int) []byte {
		b := key.Bit128().GetBytes()
		for len(b) < n {
			b = append(b, key.Bit128().GetBytes()...)
		}
		return b
	}
	ecbLine := bytes.Join([][]byte{repeated[:], random(16), repeated[:]}, nil)
	lines := []string{
		hex.EncodeToString(random(48)),
		hex.EncodeToString(random(48)),
		hex.EncodeToString(ecbLine),
		hex.EncodeToString(random(48)),
	}

	code, stdout, stderr := runCmd(t, strings.Join(lines, "\n")+"\n", "-detect", "-format", "hex")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := "-: candidate 3 has 1 repeated blocks\n" + lines[2] + "\n"
	if stdout != want {
		t.Errorf("Got     : %q\nExpected: %q", stdout, want)
	}

	code, stdout, _ = runCmd(t, lines[0]+"\n", "-detect", "-format", "hex")
	if code != 0 || stdout != "-: no repeated blocks\n" {
		t.Errorf("exit %d, output %q", code, stdout)
	}
}

func TestErrors(t *testing.T) {
	ct, _ := base64.StdEncoding.DecodeString(strings.ReplaceAll(exercisePayload, "\n", ""))
	tests := []struct {
		name   string
		stdin  string
		args   []string
		stderr string
	}{
		{
			name:   "missing key",
			args:   nil,
			stderr: "key is required",
		},
		{
			name:   "short key",
			stdin:  exercisePayload,
			args:   []string{"-key", exerciseKey[:30]},
			stderr: "invalid key size",
		},
		{
			name:   "key is not hex",
			stdin:  exercisePayload,
			args:   []string{"-key", hex.EncodeToString([]byte("YELLOW SUBMARINE"))[:31] + "z"},
			stderr: "decoding key",
		},
		{
			name:   "partial block",
			stdin:  base64.StdEncoding.EncodeToString(ct[:40]),
			args:   []string{"-key", exerciseKey},
			stderr: "not a multiple of the block size",
		},
		{
			name:   "bad padding",
			stdin:  base64.StdEncoding.EncodeToString(ct[:32]),
			args:   []string{"-key", exerciseKey, "-unpad"},
			stderr: "invalid padding",
		},
		{
			name:   "unknown format",
			args:   []string{"-key", exerciseKey, "-format", "rot13"},
			stderr: "unknown input format",
		},
		{
			name:   "missing file",
			args:   []string{"-key", exerciseKey, filepath.Join(t.TempDir(), "nope")},
			stderr: "can't open",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, _, stderr := runCmd(t, test.stdin, test.args...)
			if code == 0 {
				t.Fatal("exit status 0")
			}
			if !strings.Contains(stderr, test.stderr) {
				t.Errorf("stderr %q does not mention %q", stderr, test.stderr)
			}
		})
	}
}
