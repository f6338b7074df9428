package playinfo

import "encoding/json"

// InitialState carries the identifiers the play-url API needs, pulled from
// the state object an app-shell watch page assigns instead of inline
// playinfo.
type InitialState struct {
	BVID string
	CID  int64
}

type wireVideoData struct {
	BVID string `json:"bvid"`
	CID  int64  `json:"cid"`
}

type wireInitialState struct {
	VideoData *wireVideoData `json:"videoData"`
}

// DecodeInitialState strictly decodes the page state object with the same
// discipline as Decode.
func DecodeInitialState(data []byte) (*InitialState, error) {
	var raw wireInitialState
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapJSONError(err)
	}
	if raw.VideoData == nil {
		return nil, missingField("videoData")
	}
	if raw.VideoData.BVID == "" {
		return nil, missingField("videoData.bvid")
	}
	if raw.VideoData.CID == 0 {
		return nil, missingField("videoData.cid")
	}
	return &InitialState{BVID: raw.VideoData.BVID, CID: raw.VideoData.CID}, nil
}
