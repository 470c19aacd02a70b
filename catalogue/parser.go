// SPDX-License-Identifier: Apache-2.0 OR MIT

package catalogue

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chimeratk-go/regaccess/regerr"
)

const (
	muxedSequencePrefix = "AREA_MULTIPLEXED_SEQUENCE_"
	sequencePrefix      = "SEQUENCE_"
)

// ParseFile parses the map file at path and returns the resulting
// Catalogue.
func ParseFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, regerr.Logic("cannot open map file %q: %v", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// parsedLine holds one register line's fields before it is either added
// directly to the catalogue (scalar/1-D) or consumed as a channel of a 2-D
// register.
type parsedLine struct {
	path           string
	nElements      int
	address        uint64
	nBytes         uint32
	bar            int
	width          int
	fractionalBits int
	signed         bool
	access         Access
	regType        RegType
	interruptID    []int
}

// Parse parses a map file read from r and returns the resulting Catalogue.
func Parse(r io.Reader) (*Catalogue, error) {
	cat := NewCatalogue()

	var lines []parsedLine
	byPath := make(map[string]parsedLine)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if idx := strings.IndexByte(raw, '#'); idx >= 0 {
			raw = raw[:idx]
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if text[0] == '@' {
			key, val := splitMetadata(text)
			cat.SetMetadata(key, val)
			continue
		}
		pl, err := parseRegisterLine(text, lineNo)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pl)
		byPath[normalizePath(pl.path)] = pl
	}
	if err := scanner.Err(); err != nil {
		return nil, regerr.Runtime("error reading map file: %v", err)
	}

	for _, pl := range lines {
		name := lastComponent(pl.path)
		switch {
		case strings.HasPrefix(name, muxedSequencePrefix):
			if err := handle2D(cat, byPath, pl); err != nil {
				return nil, err
			}
		case strings.HasPrefix(name, sequencePrefix):
			// consumed as a channel of some AREA_MULTIPLEXED_SEQUENCE_ register.
		default:
			info := RegisterInfo{
				Path:           pl.path,
				NElements:      pl.nElements,
				Address:        pl.address,
				NBytes:         pl.nBytes,
				Bar:            pl.bar,
				Width:          pl.width,
				FractionalBits: pl.fractionalBits,
				Signed:         pl.signed,
				Access:         pl.access,
				Type:           pl.regType,
				InterruptID:    pl.interruptID,
			}
			if err := cat.addRegister(info); err != nil {
				return nil, err
			}
		}
	}

	return cat, nil
}

func lastComponent(path string) string {
	p := normalizePath(path)
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

func moduleOf(path string) string {
	p := normalizePath(path)
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[:idx]
	}
	return ""
}

func splitMetadata(line string) (key, value string) {
	body := strings.TrimSpace(line[1:])
	idx := strings.IndexAny(body, " \t")
	if idx < 0 {
		return body, ""
	}
	return body[:idx], strings.TrimSpace(body[idx+1:])
}

func parseUint(field string) (uint64, error) {
	return strconv.ParseUint(field, 0, 64)
}

func parseRegisterLine(line string, lineNo int) (parsedLine, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return parsedLine{}, regerr.Logic("map file line %d: expected at least NAME nElements address nBytes", lineNo)
	}
	// An absent width field means a 32-bit register.
	pl := parsedLine{path: fields[0], width: 32, access: ReadWrite, regType: FixedPoint}

	nElements, err := parseUint(fields[1])
	if err != nil {
		return parsedLine{}, regerr.Logic("map file line %d: invalid nElements %q", lineNo, fields[1])
	}
	pl.nElements = int(nElements)

	pl.address, err = parseUint(fields[2])
	if err != nil {
		return parsedLine{}, regerr.Logic("map file line %d: invalid address %q", lineNo, fields[2])
	}

	nBytes, err := parseUint(fields[3])
	if err != nil {
		return parsedLine{}, regerr.Logic("map file line %d: invalid nBytes %q", lineNo, fields[3])
	}
	pl.nBytes = uint32(nBytes)

	if len(fields) > 4 {
		bar, err := parseUint(fields[4])
		if err != nil {
			return parsedLine{}, regerr.Logic("map file line %d: invalid bar %q", lineNo, fields[4])
		}
		pl.bar = int(bar)
	}

	if len(fields) > 5 {
		width, err := parseUint(fields[5])
		if err != nil || width > 32 {
			return parsedLine{}, regerr.Logic("map file line %d: register width too big", lineNo)
		}
		pl.width = int(width)
	}

	if len(fields) > 6 {
		regType, fractionalBits, err := parseBitInterpretation(fields[6], pl.width)
		if err != nil {
			return parsedLine{}, regerr.Logic("map file line %d: %v", lineNo, err)
		}
		if fractionalBits > 1023 || fractionalBits < -1024 {
			return parsedLine{}, regerr.Logic("map file line %d: too many fractional bits", lineNo)
		}
		pl.regType = regType
		pl.fractionalBits = fractionalBits
	}
	if pl.width == 0 {
		pl.regType = Void
	}

	if len(fields) > 7 {
		v, err := parseUint(fields[7])
		if err != nil {
			return parsedLine{}, regerr.Logic("map file line %d: invalid signed flag %q", lineNo, fields[7])
		}
		pl.signed = v != 0
	}

	if len(fields) > 8 {
		access, interruptID, err := parseAccess(fields[8])
		if err != nil {
			return parsedLine{}, regerr.Logic("map file line %d: %v", lineNo, err)
		}
		pl.access = access
		pl.interruptID = interruptID
	}

	// An AREA_MULTIPLEXED_SEQUENCE_ line is never published as a register of
	// its own: the 2-D register and MULTIPLEXED_RAW companion built from it
	// are validated when handle2D adds them to the catalogue.
	if strings.HasPrefix(lastComponent(pl.path), muxedSequencePrefix) {
		return pl, nil
	}

	if err := (RegisterInfo{
		Type: pl.regType, Access: pl.access, Width: pl.width, NElements: pl.nElements,
		Address: pl.address, NBytes: pl.nBytes, Bar: pl.bar, FractionalBits: pl.fractionalBits, Signed: pl.signed,
	}).Validate(); err != nil {
		return parsedLine{}, err
	}

	return pl, nil
}

func parseBitInterpretation(token string, width int) (RegType, int, error) {
	if width == 0 {
		return Void, 0, nil
	}
	switch token {
	case "IEEE754":
		return IEEE754, 0, nil
	case "ASCII":
		return ASCII, 0, nil
	}
	n, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		return 0, 0, regerr.Logic("wrong bitInterpretation argument %q", token)
	}
	return FixedPoint, int(n), nil
}

func parseAccess(token string) (Access, []int, error) {
	upper := strings.ToUpper(token)
	if strings.HasPrefix(upper, "INTERRUPT") {
		payload := strings.TrimPrefix(upper, "INTERRUPT")
		parts := strings.Split(payload, ":")
		if len(parts) < 2 || parts[0] == "" {
			return 0, nil, regerr.Logic("malformed INTERRUPT access %q", token)
		}
		ids := make([]int, 0, len(parts))
		for _, p := range parts {
			if p == "" {
				return 0, nil, regerr.Logic("malformed INTERRUPT access %q", token)
			}
			v, err := strconv.ParseInt(p, 0, 64)
			if err != nil || v < 0 {
				return 0, nil, regerr.Logic("malformed INTERRUPT access %q", token)
			}
			ids = append(ids, int(v))
		}
		return Interrupt, ids, nil
	}
	switch upper {
	case "RO":
		return ReadOnly, nil, nil
	case "RW":
		return ReadWrite, nil, nil
	case "WO":
		return WriteOnly, nil, nil
	}
	return 0, nil, regerr.Logic("invalid access token %q", token)
}

// handle2D synthesizes the 2-D register and its MULTIPLEXED_RAW companion
// from a AREA_MULTIPLEXED_SEQUENCE_<name> line and its SEQUENCE_<name>_<i>
// siblings, following §4.1.
func handle2D(cat *Catalogue, byPath map[string]parsedLine, pl parsedLine) error {
	module := moduleOf(pl.path)
	name := strings.TrimPrefix(lastComponent(pl.path), muxedSequencePrefix)

	var channels []ChannelInfo
	bytesPerBlock := 0
	i := 0
	for {
		seqPath := joinPath(module, sequencePrefix+name+"_"+strconv.Itoa(i))
		seq, ok := byPath[normalizePath(seqPath)]
		if !ok {
			break
		}
		if seq.address < pl.address {
			return regerr.Logic("start address of channel smaller than 2-D register start address (%q)", pl.path)
		}
		if seq.nBytes != 1 && seq.nBytes != 2 && seq.nBytes != 4 {
			return regerr.Logic("sequence word size must correspond to a primitive type (1, 2 or 4 bytes)")
		}
		channels = append(channels, ChannelInfo{
			BitOffset:      int(seq.address-pl.address) * 8,
			Type:           seq.regType,
			Width:          seq.width,
			FractionalBits: seq.fractionalBits,
			Signed:         seq.signed,
		})
		bytesPerBlock += int(seq.nBytes)
		i++
	}
	if len(channels) == 0 {
		return errNoChannels
	}

	for i := 0; i < len(channels)-1; i++ {
		span := channels[i+1].BitOffset - channels[i].BitOffset
		if channels[i].Width > span {
			channels[i].Width = span
		}
	}
	last := len(channels) - 1
	span := bytesPerBlock*8 - channels[last].BitOffset
	if channels[last].Width > span {
		channels[last].Width = span
	}

	nBlocks := int(math.Floor(float64(pl.nBytes) / float64(bytesPerBlock)))

	name2D := joinPath(module, name)
	info2D := RegisterInfo{
		Path: name2D, Bar: pl.bar, Address: pl.address, NBlocks: nBlocks, Type: FixedPoint,
		BytesPerBlock: bytesPerBlock, Channels: channels, Access: pl.access, InterruptID: pl.interruptID,
	}
	if err := cat.addRegister(info2D); err != nil {
		return err
	}

	if pl.nBytes%4 != 0 {
		return regerr.Logic("2-D register %q nBytes must be a multiple of 4 for the MULTIPLEXED_RAW companion", pl.path)
	}
	rawInfo := RegisterInfo{
		Path: name2D + "/MULTIPLEXED_RAW", NElements: int(pl.nBytes / 4), Address: pl.address, NBytes: pl.nBytes,
		Bar: pl.bar, Width: 32, Signed: true, Access: pl.access, Type: FixedPoint, InterruptID: pl.interruptID,
	}
	return cat.addRegister(rawInfo)
}

func joinPath(module, name string) string {
	if module == "" {
		return name
	}
	return module + "/" + name
}
