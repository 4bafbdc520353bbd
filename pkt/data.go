package pkt

import (
	"github.com/named-data/ndncore/internal/optional"
)

// SigType identifies a signature algorithm. The numeric values are fixed by
// spec.md §4.5 and must never be renumbered, since they appear on the wire.
type SigType uint8

const (
	// SigTypeDigestSha256 signs nothing but a SHA-256 digest of the signed
	// range: an integrity check with no authentication.
	SigTypeDigestSha256 SigType = 0
	// SigTypeEcdsaSha256 signs the SHA-256 digest of the signed range with
	// ECDSA over P-256, producing a fixed 64-byte r||s signature.
	SigTypeEcdsaSha256 SigType = 1
	// SigTypeHmacSha256 signs the signed range with HMAC-SHA-256 under a
	// shared symmetric key.
	SigTypeHmacSha256 SigType = 4
)

func (t SigType) String() string {
	switch t {
	case SigTypeDigestSha256:
		return "DigestSha256"
	case SigTypeEcdsaSha256:
		return "EcdsaSha256"
	case SigTypeHmacSha256:
		return "HmacSha256"
	default:
		return "Unknown"
	}
}

// Signer produces a signature over a Data packet's signed range (sign.go in
// package sign implements this for each SigType). pkt depends only on this
// narrow interface, never on package sign, to keep the codec free of crypto
// dependencies.
type Signer interface {
	Type() SigType
	// KeyLocatorName optionally names the signing key in the Data's
	// SignatureInfo.
	KeyLocatorName() (Name, bool)
	// Sign returns the signature bytes over signed.
	Sign(signed []byte) ([]byte, error)
}

// Verifier checks a signature produced by a matching Signer.
type Verifier interface {
	Type() SigType
	Verify(signed []byte, sig []byte) error
}

// Data is the in-memory form of a Data packet (spec.md §4.4):
//
//	Data { Name, MetaInfo, Content, SignatureInfo{SignatureType, [KeyLocator]}, SignatureValue }
type Data struct {
	Name           Name
	Meta           MetaInfo
	Content        []byte
	SigType        SigType
	KeyLocatorName optional.Optional[Name]
	SignatureValue []byte
}

// signatureInfoBytes renders the SignatureInfo TLV (including its own TL
// header), covering SignatureType and the optional KeyLocator.
func (d Data) signatureInfoBytes() ([]byte, error) {
	inner := TotalTLVLength(TypeSignatureType, NatEncodingLength(uint64(d.SigType)))
	var klBytes []byte
	if kl, ok := d.KeyLocatorName.Get(); ok {
		nameLen := TotalTLVLength(TypeName, kl.EncodingLength())
		klInner := nameLen
		klBytes = make([]byte, TotalTLVLength(TypeKeyLocator, klInner))
		p1, _ := WriteVarNum(klBytes, TypeKeyLocator)
		p2, _ := WriteVarNum(klBytes[p1:], VarNum(klInner))
		if _, err := kl.EncodeInto(klBytes[p1+p2:]); err != nil {
			return nil, err
		}
		inner += len(klBytes)
	}

	buf := make([]byte, TotalTLVLength(TypeSignatureInfo, inner))
	p1, _ := WriteVarNum(buf, TypeSignatureInfo)
	p2, _ := WriteVarNum(buf[p1:], VarNum(inner))
	pos := p1 + p2

	stLen := NatEncodingLength(uint64(d.SigType))
	tp, _ := WriteVarNum(buf[pos:], TypeSignatureType)
	lp, _ := WriteVarNum(buf[pos+tp:], VarNum(stLen))
	_, _ = WriteNat(buf[pos+tp+lp:], uint64(d.SigType))
	pos += tp + lp + stLen

	if len(klBytes) > 0 {
		pos += copy(buf[pos:], klBytes)
	}
	return buf, nil
}

// signedBytes reconstructs the exact byte range a Signer/Verifier must
// operate over: Name, MetaInfo, Content and SignatureInfo concatenated,
// stopping immediately before SignatureValue (spec.md §4.5). Because this
// codec always emits the single canonical encoding for a given set of
// fields, reconstructing these bytes from the parsed struct is equivalent
// to slicing them out of the original wire bytes.
func (d Data) signedBytes() ([]byte, error) {
	nameBytes, err := d.Name.Bytes()
	if err != nil {
		return nil, err
	}
	metaBytes := d.Meta.Bytes()
	contentBytes := make([]byte, TotalTLVLength(TypeContent, len(d.Content)))
	p1, _ := WriteVarNum(contentBytes, TypeContent)
	p2, _ := WriteVarNum(contentBytes[p1:], VarNum(len(d.Content)))
	copy(contentBytes[p1+p2:], d.Content)

	sigInfoBytes, err := d.signatureInfoBytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(nameBytes)+len(metaBytes)+len(contentBytes)+len(sigInfoBytes))
	out = append(out, nameBytes...)
	out = append(out, metaBytes...)
	out = append(out, contentBytes...)
	out = append(out, sigInfoBytes...)
	return out, nil
}

// Encode renders the Data packet to a freshly allocated TLV block, invoking
// signer to produce the SignatureValue over the signed range.
func (d Data) Encode(signer Signer) ([]byte, error) {
	if len(d.Name) == 0 {
		return nil, InvalidArgument("data name must have at least one component")
	}
	d.SigType = signer.Type()
	if kl, ok := signer.KeyLocatorName(); ok {
		d.KeyLocatorName.Set(kl)
	}

	signed, err := d.signedBytes()
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signed)
	if err != nil {
		return nil, err
	}

	sigValueBytes := make([]byte, TotalTLVLength(TypeSignatureValue, len(sig)))
	p1, _ := WriteVarNum(sigValueBytes, TypeSignatureValue)
	p2, _ := WriteVarNum(sigValueBytes[p1:], VarNum(len(sig)))
	copy(sigValueBytes[p1+p2:], sig)

	inner := len(signed) + len(sigValueBytes)
	buf := make([]byte, TotalTLVLength(TypeData, inner))
	h1, _ := WriteVarNum(buf, TypeData)
	h2, _ := WriteVarNum(buf[h1:], VarNum(inner))
	pos := h1 + h2
	pos += copy(buf[pos:], signed)
	pos += copy(buf[pos:], sigValueBytes)
	return buf[:pos], nil
}

// DataFromBlock decodes a Data TLV from buf.
func DataFromBlock(buf Block) (Data, error) {
	length, hdr, err := expectTLHeader(buf, TypeData)
	if err != nil {
		return Data{}, err
	}
	inner := buf[hdr : hdr+length]

	name, err := NameFromBlock(inner)
	if err != nil {
		return Data{}, err
	}
	pos := TotalTLVLength(TypeName, name.EncodingLength())

	meta, n, err := parseMetaInfo(inner[pos:])
	if err != nil {
		return Data{}, err
	}
	pos += n

	ctype, clen, chdr, err := readTLHeader(inner[pos:])
	if err != nil {
		return Data{}, err
	}
	if ctype != TypeContent {
		return Data{}, Malformed("expected Content TLV, got type %d", ctype)
	}
	content := inner[pos+chdr : pos+chdr+clen]
	pos += chdr + clen

	siType, siLen, siHdr, err := readTLHeader(inner[pos:])
	if err != nil {
		return Data{}, err
	}
	if siType != TypeSignatureInfo {
		return Data{}, Malformed("expected SignatureInfo TLV, got type %d", siType)
	}
	siInner := inner[pos+siHdr : pos+siHdr+siLen]
	pos += siHdr + siLen

	var d Data
	d.Name = name
	d.Meta = meta
	d.Content = content

	sp := 0
	stType, stLen, stHdr, err := readTLHeader(siInner[sp:])
	if err != nil {
		return Data{}, err
	}
	if stType != TypeSignatureType {
		return Data{}, Malformed("expected SignatureType TLV, got type %d", stType)
	}
	stVal, err := ReadNat(siInner[sp+stHdr : sp+stHdr+stLen])
	if err != nil {
		return Data{}, err
	}
	d.SigType = SigType(stVal)
	sp += stHdr + stLen

	if sp < len(siInner) {
		klType, klLen, klHdr, err := readTLHeader(siInner[sp:])
		if err != nil {
			return Data{}, err
		}
		if klType != TypeKeyLocator {
			return Data{}, Malformed("expected KeyLocator TLV, got type %d", klType)
		}
		klName, err := NameFromBlock(siInner[sp+klHdr : sp+klHdr+klLen])
		if err != nil {
			return Data{}, err
		}
		d.KeyLocatorName.Set(klName)
	}

	svType, svLen, svHdr, err := readTLHeader(inner[pos:])
	if err != nil {
		return Data{}, err
	}
	if svType != TypeSignatureValue {
		return Data{}, Malformed("expected SignatureValue TLV, got type %d", svType)
	}
	d.SignatureValue = inner[pos+svHdr : pos+svHdr+svLen]

	return d, nil
}

// Verify checks the Data's SignatureValue against its reconstructed signed
// range using v.
func (d Data) Verify(v Verifier) error {
	if v.Type() != d.SigType {
		return Unsupported("data is signed with SigType %d, verifier expects %d", d.SigType, v.Type())
	}
	signed, err := d.signedBytes()
	if err != nil {
		return err
	}
	return v.Verify(signed, d.SignatureValue)
}

// GetName returns the Data's name.
func (d Data) GetName() Name { return d.Name }

// GetMetaInfo returns the Data's MetaInfo.
func (d Data) GetMetaInfo() MetaInfo { return d.Meta }

// GetContent returns the Data's content.
func (d Data) GetContent() []byte { return d.Content }

// GetKeyLocatorName returns the Name carried in the KeyLocator, if any.
func (d Data) GetKeyLocatorName() (Name, bool) { return d.KeyLocatorName.Get() }
