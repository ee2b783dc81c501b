package archive

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

// writeJSONMember encodes v as an indented JSON array.
func writeJSONMember(zw *zip.Writer, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return writeMember(zw, name, data)
}

func writeMember(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating member %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing member %s: %w", name, err)
	}
	return nil
}

// indexMembers maps member names to files. When a name repeats, the last
// one wins, which is what most unzip tools extract.
func indexMembers(zr *zip.Reader) map[string]*zip.File {
	members := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		members[f.Name] = f
	}
	return members
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening member %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading member %s: %w", f.Name, err)
	}
	if len(data) > maxMemberSize {
		return nil, fmt.Errorf("member %s exceeds %d bytes", f.Name, maxMemberSize)
	}
	return data, nil
}

// readJSONMember decodes a JSON array member into v. Any decode failure is
// reported as a malformed record.
func readJSONMember(f *zip.File, v any) error {
	data, err := readMember(f)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		if errors.Is(err, types.ErrMalformedRecord) {
			return fmt.Errorf("decoding %s: %w", f.Name, err)
		}
		return fmt.Errorf("decoding %s: %w: %w", f.Name, types.ErrMalformedRecord, err)
	}
	return nil
}
