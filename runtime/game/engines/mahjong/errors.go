package mahjong

import "errors"

// 手牌解析相关错误
var (
	ErrMalformedEncoding = errors.New("malformed hand encoding")
	ErrTileOverflow      = errors.New("more than four copies of a tile")
	ErrHandSize          = errors.New("hand size must be 13 or 14")
)
