// Package realname completes real-name authentication with face verification results.
package realname

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
	kdbrealname "github.com/kubeconsole/console/pkg/domain/realname/db"
	xe "github.com/kubeconsole/console/pkg/errors"
)

var ErrVerificationFailed = errors.New("face verification failed")

// VerificationFailed tells the verification did not pass.
type VerificationFailed struct {
	ErrCode int64
	ErrMsg  string

	// times the user has failed, including this one.
	FailedTimes int
}

func (v *VerificationFailed) Error() string {
	return fmt.Sprintf("%s: %s (code %d, %d times)", ErrVerificationFailed, v.ErrMsg, v.ErrCode, v.FailedTimes)
}

func (v *VerificationFailed) Unwrap() error {
	return ErrVerificationFailed
}

// Verification is the outcome of a face verification session.
type Verification struct {
	ErrCode int64
	ErrMsg  string

	Name   string
	IDCard string

	// JPEG of the best frame. nil when not given.
	BestFrame []byte

	// MP4 of liveness detection. nil when not given.
	Video []byte
}

// FaceID queries verification results.
type FaceID interface {
	Result(ctx context.Context, bizToken string) (Verification, error)

	// rule of verification sessions.
	RuleID() string
}

// ObjectStore keeps verification evidences.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type Service struct {
	faceID    FaceID
	store     ObjectStore
	realnames kdbrealname.RealNameInterface
}

// New returns a Service. store can be nil, then evidences are not kept.
func New(faceID FaceID, store ObjectStore, realnames kdbrealname.RealNameInterface) *Service {
	return &Service{faceID: faceID, store: store, realnames: realnames}
}

// Prefix of object keys for evidences of the user.
func Prefix(userUID uuid.UUID) string {
	return path.Join("realname", userUID.String())
}

// Callback completes a verification session of the user.
//
// When the verification passed, evidences are stored and the user gets verified.
// Otherwise the failure is recorded and *VerificationFailed is returned.
func (s *Service) Callback(ctx context.Context, userUID uuid.UUID, bizToken string) (domain.RealNameInfo, error) {
	v, err := s.faceID.Result(ctx, bizToken)
	if err != nil {
		return domain.RealNameInfo{}, xe.Wrap(err)
	}

	detail := domain.FaceIDInfo{
		BizToken: bizToken,
		RuleID:   s.faceID.RuleID(),
		ErrCode:  v.ErrCode,
		ErrMsg:   v.ErrMsg,
	}
	if !detail.Succeeded() {
		n, err := s.realnames.RecordFailure(ctx, userUID, detail)
		if err != nil {
			return domain.RealNameInfo{}, xe.Wrap(err)
		}
		return domain.RealNameInfo{}, &VerificationFailed{ErrCode: v.ErrCode, ErrMsg: v.ErrMsg, FailedTimes: n}
	}

	info := domain.RealNameInfo{
		UserUID:        userUID,
		RealName:       v.Name,
		IDCard:         v.IDCard,
		IsVerified:     true,
		AdditionalInfo: detail,
	}
	if s.store != nil {
		prefix := Prefix(userUID)
		if v.BestFrame != nil {
			key := path.Join(prefix, bizToken+".jpg")
			if err := s.store.Put(ctx, key, v.BestFrame, "image/jpeg"); err != nil {
				return domain.RealNameInfo{}, xe.WrapWithNote("storing photo", err)
			}
			info.PhotoObject = key
		}
		if v.Video != nil {
			key := path.Join(prefix, bizToken+".mp4")
			if err := s.store.Put(ctx, key, v.Video, "video/mp4"); err != nil {
				return domain.RealNameInfo{}, xe.WrapWithNote("storing video", err)
			}
			info.VideoObject = key
		}
	}

	if err := s.realnames.Upsert(ctx, info); err != nil {
		return domain.RealNameInfo{}, xe.Wrap(err)
	}
	return info, nil
}
