package user

type UserId int64

type User struct {
	Id          UserId   `json:"user_id" bson:"user_id"`
	Username    string   `json:"username" bson:"username"`
	Password    []byte   `json:"-" bson:"password"`
	PictureName string   `json:"-" bson:"picture_name"`
	NameColor   string   `json:"name_color" bson:"name_color"`

	// Authors whose posts show up in this user's feed.
	Circles []UserId `json:"circles" bson:"circles"`
}

type UserFromToken struct {
	Username string `json:"username"`
	Id       UserId `json:"id"`
}
