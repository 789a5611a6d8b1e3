package data

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "github.com/jobpilot/jobreview/internal/errors"
)

// keyAttr is the JSON form of one key attribute. DynamoDB keys are only ever S, N or B.
type keyAttr struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// EncodeContinuation turns a LastEvaluatedKey into an opaque token. An empty key (end of
// the index) encodes to the empty token.
func EncodeContinuation(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}

	payload := make(map[string]keyAttr, len(key))
	for name, av := range key {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			payload[name] = keyAttr{S: &v.Value}
		case *types.AttributeValueMemberN:
			payload[name] = keyAttr{N: &v.Value}
		case *types.AttributeValueMemberB:
			payload[name] = keyAttr{B: v.Value}
		default:
			return "", fmt.Errorf("encode continuation: unsupported key attribute %q (%T)", name, av)
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal continuation: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeContinuation reverses EncodeContinuation. The empty token decodes to a nil key
// (start of the index). Malformed tokens are validation errors.
func DecodeContinuation(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "decode continuation token")
	}

	var payload map[string]keyAttr
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "unmarshal continuation token")
	}
	if len(payload) == 0 {
		return nil, apperrors.ValidationField("cursor", "continuation token has no key attributes")
	}

	key := make(map[string]types.AttributeValue, len(payload))
	for name, attr := range payload {
		av, err := attr.value()
		if err != nil {
			return nil, apperrors.ValidationField("cursor", fmt.Sprintf("attribute %q: %v", name, err))
		}
		key[name] = av
	}
	return key, nil
}

func (a keyAttr) value() (types.AttributeValue, error) {
	set := 0
	var out types.AttributeValue
	if a.S != nil {
		set++
		out = &types.AttributeValueMemberS{Value: *a.S}
	}
	if a.N != nil {
		set++
		out = &types.AttributeValueMemberN{Value: *a.N}
	}
	if a.B != nil {
		set++
		out = &types.AttributeValueMemberB{Value: a.B}
	}
	if set != 1 {
		return nil, fmt.Errorf("expected exactly one of S, N, B; got %d", set)
	}
	return out, nil
}
