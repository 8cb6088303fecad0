package utils

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func loginSession(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

// SaveLoginSession stores the login token in the session and in the
// auth cookie so browser clients stay logged in
func SaveLoginSession(c *gin.Context, token string, maxAge int) error {
	c.SetCookie(AuthTokenKey, token, maxAge, "/", "", false, true)

	session := loginSession(c)
	if session == nil {
		return nil
	}
	session.Set(AuthTokenKey, token)
	if err := session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	return nil
}

// ClearLoginSession removes the login token from the session and cookie
func ClearLoginSession(c *gin.Context) error {
	c.SetCookie(AuthTokenKey, "", -1, "/", "", false, true)

	session := loginSession(c)
	if session == nil {
		return nil
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}
