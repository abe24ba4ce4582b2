package models

type Setting struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	OrgName           string  `gorm:"size:100" json:"org_name"`
	Tagline           string  `gorm:"size:255" json:"tagline"`
	Logo              string  `gorm:"size:255" json:"logo"`
	ContactEmail      string  `gorm:"size:191" json:"contact_email"`
	ContactPhone      string  `gorm:"size:20" json:"contact_phone"`
	Address           string  `gorm:"size:255" json:"address"`
	MinDonationAmount float64 `gorm:"type:decimal(15,2);default:1" json:"min_donation_amount"`
	ReceiptPrefix     string  `gorm:"size:10;default:'HRF'" json:"receipt_prefix"`
	Maintenance       bool    `gorm:"default:false" json:"maintenance"`
	LinkFacebook      string  `gorm:"size:255" json:"link_facebook"`
	LinkTwitter       string  `gorm:"size:255" json:"link_twitter"`
	LinkInstagram     string  `gorm:"size:255" json:"link_instagram"`
}

func (Setting) TableName() string {
	return "settings"
}
