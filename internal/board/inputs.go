package board

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=256"`
	Email    string `json:"email" validate:"required,min=6,max=256,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,min=6,max=256,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

type TopicInput struct {
	Name string `json:"name" validate:"required,min=1,max=256"`
}

type PostInput struct {
	Title   string   `json:"title" validate:"required,min=3,max=256"`
	Topics  []string `json:"topics" validate:"required,min=1,dive,len=24,hexadecimal"`
	Message string   `json:"message" validate:"required,min=3"`
}

type CommentInput struct {
	Message string `json:"message" validate:"required,min=1"`
}
