package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RealNameInfo is a record of real-name authentication of a user.
type RealNameInfo struct {
	UserUID     uuid.UUID
	RealName    string
	IDCard      string
	IsVerified  bool
	PhotoObject string
	VideoObject string

	// times of failed verification.
	FailedTimes int

	// nil when nothing is recorded.
	AdditionalInfo AdditionalInfo
}

type AdditionalInfoKind string

const (
	AdditionalInfoFaceID     AdditionalInfoKind = "faceId"
	AdditionalInfoEnterprise AdditionalInfoKind = "enterprise"
)

// AdditionalInfo is one of FaceIDInfo, EnterpriseInfo or UnknownInfo.
//
// In JSON, the variant is told by the "kind" field.
type AdditionalInfo interface {
	Kind() AdditionalInfoKind
	additionalInfo()
}

// result of a Tencent Cloud FaceID verification.
type FaceIDInfo struct {
	BizToken string `json:"bizToken"`
	RuleID   string `json:"ruleId"`
	ErrCode  int64  `json:"errCode"`
	ErrMsg   string `json:"errMsg,omitempty"`
}

func (FaceIDInfo) Kind() AdditionalInfoKind { return AdditionalInfoFaceID }
func (FaceIDInfo) additionalInfo()          {}

// Succeeded reports whether the verification passed.
func (f FaceIDInfo) Succeeded() bool {
	return f.ErrCode == 0
}

type EnterpriseInfo struct {
	EnterpriseName string `json:"enterpriseName"`
	CreditCode     string `json:"creditCode"`
}

func (EnterpriseInfo) Kind() AdditionalInfoKind { return AdditionalInfoEnterprise }
func (EnterpriseInfo) additionalInfo()          {}

// UnknownInfo keeps additional info of unknown kind as it is.
type UnknownInfo struct {
	kind AdditionalInfoKind
	Raw  json.RawMessage
}

func (u UnknownInfo) Kind() AdditionalInfoKind { return u.kind }
func (UnknownInfo) additionalInfo()            {}

// MarshalAdditionalInfo encodes AdditionalInfo with "kind" field.
//
// nil is encoded as JSON null. UnknownInfo is encoded as its raw message.
func MarshalAdditionalInfo(info AdditionalInfo) ([]byte, error) {
	switch i := info.(type) {
	case nil:
		return []byte("null"), nil
	case UnknownInfo:
		return i.Raw, nil
	case FaceIDInfo:
		return json.Marshal(struct {
			Kind AdditionalInfoKind `json:"kind"`
			FaceIDInfo
		}{Kind: i.Kind(), FaceIDInfo: i})
	case EnterpriseInfo:
		return json.Marshal(struct {
			Kind AdditionalInfoKind `json:"kind"`
			EnterpriseInfo
		}{Kind: i.Kind(), EnterpriseInfo: i})
	default:
		return nil, fmt.Errorf("unsupported additional info: %T", info)
	}
}

// UnmarshalAdditionalInfo decodes AdditionalInfo.
//
// Empty input or JSON null is decoded as nil.
// Objects without known "kind" are decoded as UnknownInfo.
func UnmarshalAdditionalInfo(b []byte) (AdditionalInfo, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	head := struct {
		Kind AdditionalInfoKind `json:"kind"`
	}{}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case AdditionalInfoFaceID:
		info := FaceIDInfo{}
		if err := json.Unmarshal(trimmed, &info); err != nil {
			return nil, err
		}
		return info, nil
	case AdditionalInfoEnterprise:
		info := EnterpriseInfo{}
		if err := json.Unmarshal(trimmed, &info); err != nil {
			return nil, err
		}
		return info, nil
	default:
		return UnknownInfo{kind: head.Kind, Raw: append(json.RawMessage{}, trimmed...)}, nil
	}
}
