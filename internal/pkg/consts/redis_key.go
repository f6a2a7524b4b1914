package consts

const (
	BlogLikeKey    = "blog:like:"
	BlogViewKey    = "blog:view:"
	BlogCommentKey = "blog:comment:"
	BlogDirtyKey   = "blog:dirty"
)

const (
	TokenDenyKey = "token:deny:"
)
