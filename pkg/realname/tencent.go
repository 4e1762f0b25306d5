package realname

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	faceid "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/faceid/v20180301"
)

type tencentFaceID struct {
	client *faceid.Client
	ruleID string
}

// TencentFaceID queries results with Tencent Cloud FaceID.
func TencentFaceID(secretID, secretKey, region, ruleID string) (FaceID, error) {
	client, err := faceid.NewClient(common.NewCredential(secretID, secretKey), region, profile.NewClientProfile())
	if err != nil {
		return nil, err
	}
	return &tencentFaceID{client: client, ruleID: ruleID}, nil
}

func (t *tencentFaceID) RuleID() string {
	return t.ruleID
}

func (t *tencentFaceID) Result(ctx context.Context, bizToken string) (Verification, error) {
	req := faceid.NewGetDetectInfoEnhancedRequest()
	req.BizToken = common.StringPtr(bizToken)
	req.RuleId = common.StringPtr(t.ruleID)
	req.InfoType = common.StringPtr("0")

	resp, err := t.client.GetDetectInfoEnhancedWithContext(ctx, req)
	if err != nil {
		return Verification{}, err
	}
	if resp.Response == nil || resp.Response.Text == nil {
		return Verification{}, fmt.Errorf("faceid: no result for %s", bizToken)
	}

	text := resp.Response.Text
	v := Verification{
		ErrCode: deref(text.ErrCode),
		ErrMsg:  deref(text.ErrMsg),
		Name:    deref(text.Name),
		IDCard:  deref(text.IdCard),
	}
	if bf := resp.Response.BestFrame; bf != nil && bf.BestFrame != nil {
		if v.BestFrame, err = base64.StdEncoding.DecodeString(*bf.BestFrame); err != nil {
			return Verification{}, fmt.Errorf("faceid: best frame: %w", err)
		}
	}
	if vd := resp.Response.VideoData; vd != nil && vd.LivenessVideo != nil {
		if v.Video, err = base64.StdEncoding.DecodeString(*vd.LivenessVideo); err != nil {
			return Verification{}, fmt.Errorf("faceid: video: %w", err)
		}
	}
	return v, nil
}

func deref[T any](p *T) T {
	if p == nil {
		return *new(T)
	}
	return *p
}
